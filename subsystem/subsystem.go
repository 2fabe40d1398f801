// Package subsystem defines the collaborators driven by the frame
// orchestrator. Concrete backends live in their own packages; the
// orchestrator only depends on the interfaces declared here.
package subsystem

import "github.com/backusd/cubeworld/types"

// Every subsystem owned by the application can be shut down. Shutdown is
// called exactly once by the lifecycle manager.
type Subsystem interface {
	Shutdown()
}

// Host is the native window the application renders into.
type Host interface {
	// Get the client area size in pixels.
	Size() (w, h int)
}

// Display options shared by the renderer and the zone projection.
type DisplayOptions struct {
	Width      int
	Height     int
	VSync      bool
	FullScreen bool

	// Far and near clipping planes.
	ScreenDepth float32
	ScreenNear  float32
}

// Controls exposes the input snapshot for the current frame.
type Controls interface {
	// True while the action's binding is held down.
	Pressed(Action) bool

	// True only on the frame the action's binding went down.
	Triggered(Action) bool

	// Cursor position in window coordinates.
	Cursor() types.Vec2
}

type Input interface {
	Subsystem
	Controls

	Init(host Host, w, h int) error

	// Sample input for this frame.
	Frame() error

	// True if the user asked to exit.
	CancelRequested() bool

	// Track a new client area size.
	Resize(w, h int)
}

type Renderer interface {
	Subsystem

	Init(host Host, opts DisplayOptions) error

	// Clear the back buffer.
	BeginScene(r, g, b, a float32)

	// Present the back buffer.
	EndScene()

	// Adjust the viewport to a new client area size.
	Resize(w, h int)
}

// Clock tracks the time between frames.
type Clock interface {
	Subsystem
	Init() error
	Frame()

	// Elapsed time since the previous frame in milliseconds.
	Time() float32
}

type FrameCounter interface {
	Subsystem
	Init() error
	Frame()
	FPS() int
}

type CPUCounter interface {
	Subsystem
	Init() error
	Frame()
	Percent() int
}

// ChatSink receives chat text relayed from the network peer.
type ChatSink interface {
	AddChatMessage(text string)
}

type UI interface {
	Subsystem
	ChatSink

	Init(r Renderer, host Host, w, h int) error

	// Update the overlay for this frame.
	Frame(r Renderer, in Controls, fps, cpu int, latency float32) error

	// Draw the overlay into the current scene.
	Draw(r Renderer)

	Resize(w, h int)
}

// StateSelector reports which zone is active.
type StateSelector interface {
	Subsystem
	Current() ZoneState
}

// RemoteAvatars is the zone-side view the network uses to mirror other
// players.
type RemoteAvatars interface {
	AddAvatar(id uint32, pos PositionUpdate)
	MoveAvatar(id uint32, pos PositionUpdate)
	SetAvatarState(id uint32, state StateChange)
	RemoveAvatar(id uint32)
}

type Zone interface {
	Subsystem
	RemoteAvatars

	Init(r Renderer, host Host, w, h int, screenDepth, screenNear float32) error

	// Advance the simulation and render the zone.
	Frame(r Renderer, in Controls, elapsed float32, ui UI) error

	// One-shot delta queries. Each pending delta is returned once.
	PollStateChange() (StateChange, bool)
	PollPositionUpdate() (PositionUpdate, bool)

	// Update the projection for a new client area size.
	Resize(w, h int)
}

type Network interface {
	Subsystem

	Init(address string, port int) error

	// Process pending inbound traffic.
	Frame()

	SendStateChange(state StateChange)
	SendPositionUpdate(pos PositionUpdate)

	// Round trip time to the peer in milliseconds.
	Latency() float32
}
