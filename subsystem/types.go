package subsystem

import (
	"fmt"

	"github.com/backusd/cubeworld/types"
)

// ZoneState selects which zone simulation advances each frame.
type ZoneState uint8

const (
	// No zone is active; frames skip simulation work.
	NoZone ZoneState = iota
	BlackForest
)

func (s ZoneState) String() string {
	switch s {
	case NoZone:
		return "none"
	case BlackForest:
		return "black forest"
	}
	return fmt.Sprintf("zone(%d)", uint8(s))
}

// StateChange is the single byte code sent when the avatar changes state.
type StateChange byte

// Avatar state codes.
const (
	AvatarIdle    StateChange = 'I'
	AvatarWalking StateChange = 'W'
	AvatarJumping StateChange = 'J'
)

func (s StateChange) String() string {
	return fmt.Sprintf("%q", byte(s))
}

// PositionUpdate carries the avatar position and its rotation in degrees.
type PositionUpdate struct {
	Position types.Vec3
	Rotation types.Vec3
}

// Action is a logical control the input backend maps physical keys and
// mouse buttons to.
type Action uint8

const (
	MoveForward Action = iota
	MoveBackward
	TurnLeft
	TurnRight
	LookUp
	LookDown
	MoveUp
	MoveDown
	Jump
	// Held to steer the camera with the mouse.
	FreeLook
	ToggleUI
	Cancel
	NumActions
)

// Sample holds the per-frame values fed to the UI and the zone.
type Sample struct {
	// Time since the previous frame in milliseconds.
	Elapsed float32

	FPS     int
	CPU     int
	Latency float32
}
