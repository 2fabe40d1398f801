// Package zone implements the zone state selector and the zone simulations
// the client can be in.
package zone

import (
	"errors"
	"fmt"

	"github.com/backusd/cubeworld/log"
	"github.com/backusd/cubeworld/subsystem"
	"github.com/backusd/cubeworld/types"
)

const (
	// Movement rates per millisecond of frame time.
	moveSpeed  float32 = 0.01
	climbSpeed float32 = 0.005
	turnSpeed  float32 = 0.1
	lookSpeed  float32 = 0.075

	// Degrees of rotation per pixel of cursor travel while free looking.
	mouseSensitivity float32 = 0.25

	// Minimum time in ms between two reported position updates.
	positionUpdateInterval float32 = 50

	// Half the side of the ground grid.
	groundExtent float32 = 128
)

var (
	ErrNotInitialized  = errors.New("zone: not initialized")
	ErrInvalidViewport = errors.New("zone: viewport dimensions must be positive")
)

var spawnPoint = types.XYZ(0, 2, -10)

// scenePainter draws the zone. The zone decides what to draw; the painter
// decides how.
type scenePainter interface {
	setupView(cam *Camera, aspect, near, depth float32)
	ground(extent float32)
	avatar(pos subsystem.PositionUpdate, state subsystem.StateChange)
}

type remoteAvatar struct {
	pos   subsystem.PositionUpdate
	state subsystem.StateChange
}

// BlackForest is the forest zone simulation. It moves the local avatar from
// the input controls, mirrors remote avatars reported by the network and
// decides when the local avatar's state or position is worth reporting.
type BlackForest struct {
	logger  log.Logger
	painter scenePainter

	camera *Camera

	// Cursor position on the previous free look frame.
	lookAnchor types.Vec2

	width  int
	height int
	depth  float32
	near   float32

	// The avatar state last reported and whether the report is pending.
	reportedState subsystem.StateChange
	pendingState  bool

	// The position last reported and the time accumulated since.
	reportedPos     subsystem.PositionUpdate
	sinceReported   float32
	pendingPosition bool

	avatars map[uint32]*remoteAvatar
}

func NewBlackForest() *BlackForest {
	return newBlackForest(glPainter{})
}

func newBlackForest(p scenePainter) *BlackForest {
	return &BlackForest{
		logger:  log.New("black forest"),
		painter: p,
	}
}

func (z *BlackForest) Init(_ subsystem.Renderer, _ subsystem.Host, w, h int, screenDepth, screenNear float32) error {
	if w <= 0 || h <= 0 {
		return ErrInvalidViewport
	}
	if screenNear <= 0 || screenNear >= screenDepth {
		return fmt.Errorf("zone: invalid clipping planes near=%f depth=%f", screenNear, screenDepth)
	}

	z.width, z.height = w, h
	z.depth, z.near = screenDepth, screenNear
	z.camera = NewCamera(spawnPoint)
	z.avatars = make(map[uint32]*remoteAvatar)

	z.reportedState = subsystem.AvatarIdle
	z.pendingState = false

	// Force the spawn position out on the first frame.
	z.reportedPos = subsystem.PositionUpdate{}
	z.sinceReported = positionUpdateInterval
	z.pendingPosition = false

	z.logger.Infof("entered zone at %v", spawnPoint)
	return nil
}

func (z *BlackForest) Frame(r subsystem.Renderer, in subsystem.Controls, elapsed float32, ui subsystem.UI) error {
	if z.camera == nil {
		return ErrNotInitialized
	}

	moved := z.handleMovement(in, elapsed)
	z.detectStateChange(in, moved)
	z.detectPositionChange(elapsed)

	z.render(r, ui)
	return nil
}

func (z *BlackForest) handleMovement(in subsystem.Controls, elapsed float32) bool {
	moved := false

	if in.Pressed(subsystem.TurnLeft) {
		z.camera.Turn(-turnSpeed * elapsed)
	}
	if in.Pressed(subsystem.TurnRight) {
		z.camera.Turn(turnSpeed * elapsed)
	}
	if in.Pressed(subsystem.LookUp) {
		z.camera.Look(lookSpeed * elapsed)
	}
	if in.Pressed(subsystem.LookDown) {
		z.camera.Look(-lookSpeed * elapsed)
	}

	if in.Pressed(subsystem.FreeLook) {
		cursor := in.Cursor()
		// The first frame only anchors the cursor so the view does not jump.
		if !in.Triggered(subsystem.FreeLook) {
			delta := cursor.Sub(z.lookAnchor)
			z.camera.Turn(delta[0] * mouseSensitivity)
			z.camera.Look(-delta[1] * mouseSensitivity)
		}
		z.lookAnchor = cursor
	}

	if in.Pressed(subsystem.MoveForward) != in.Pressed(subsystem.MoveBackward) {
		if in.Pressed(subsystem.MoveForward) {
			z.camera.Move(Forward, moveSpeed*elapsed)
		} else {
			z.camera.Move(Backward, moveSpeed*elapsed)
		}
		moved = true
	}
	if in.Pressed(subsystem.MoveUp) != in.Pressed(subsystem.MoveDown) {
		if in.Pressed(subsystem.MoveUp) {
			z.camera.Move(Up, climbSpeed*elapsed)
		} else {
			z.camera.Move(Down, climbSpeed*elapsed)
		}
		moved = true
	}

	return moved
}

func (z *BlackForest) detectStateChange(in subsystem.Controls, moved bool) {
	state := subsystem.AvatarIdle
	switch {
	case in.Pressed(subsystem.Jump):
		state = subsystem.AvatarJumping
	case moved:
		state = subsystem.AvatarWalking
	}

	if state != z.reportedState {
		z.reportedState = state
		z.pendingState = true
	}
}

func (z *BlackForest) detectPositionChange(elapsed float32) {
	z.sinceReported += elapsed

	current := subsystem.PositionUpdate{Position: z.camera.Position, Rotation: z.camera.Rotation}
	unchanged := current.Position.ApproxEqual(z.reportedPos.Position) &&
		current.Rotation.ApproxEqual(z.reportedPos.Rotation)
	if unchanged || z.sinceReported < positionUpdateInterval {
		return
	}

	z.reportedPos = current
	z.sinceReported = 0
	z.pendingPosition = true
}

func (z *BlackForest) render(r subsystem.Renderer, ui subsystem.UI) {
	r.BeginScene(0.05, 0.12, 0.08, 1.0)

	z.painter.setupView(z.camera, float32(z.width)/float32(z.height), z.near, z.depth)
	z.painter.ground(groundExtent)
	for _, av := range z.avatars {
		z.painter.avatar(av.pos, av.state)
	}

	if ui != nil {
		ui.Draw(r)
	}

	r.EndScene()
}

// Keep the projection aspect ratio in sync with the client area.
func (z *BlackForest) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	z.width, z.height = w, h
}

func (z *BlackForest) PollStateChange() (subsystem.StateChange, bool) {
	if !z.pendingState {
		return 0, false
	}
	z.pendingState = false
	return z.reportedState, true
}

func (z *BlackForest) PollPositionUpdate() (subsystem.PositionUpdate, bool) {
	if !z.pendingPosition {
		return subsystem.PositionUpdate{}, false
	}
	z.pendingPosition = false
	return z.reportedPos, true
}

// Get the local avatar camera.
func (z *BlackForest) Camera() *Camera {
	return z.camera
}

func (z *BlackForest) AddAvatar(id uint32, pos subsystem.PositionUpdate) {
	if z.avatars == nil {
		return
	}
	z.avatars[id] = &remoteAvatar{pos: pos, state: subsystem.AvatarIdle}
	z.logger.Infof("avatar %d joined", id)
}

func (z *BlackForest) MoveAvatar(id uint32, pos subsystem.PositionUpdate) {
	av, ok := z.avatars[id]
	if !ok {
		z.logger.Debugf("position update for unknown avatar %d", id)
		z.AddAvatar(id, pos)
		return
	}
	av.pos = pos
}

func (z *BlackForest) SetAvatarState(id uint32, state subsystem.StateChange) {
	av, ok := z.avatars[id]
	if !ok {
		z.logger.Debugf("state change for unknown avatar %d", id)
		return
	}
	av.state = state
}

func (z *BlackForest) RemoveAvatar(id uint32) {
	if _, ok := z.avatars[id]; !ok {
		return
	}
	delete(z.avatars, id)
	z.logger.Infof("avatar %d left", id)
}

// Get the number of mirrored remote avatars.
func (z *BlackForest) AvatarCount() int {
	return len(z.avatars)
}

func (z *BlackForest) Shutdown() {
	z.camera = nil
	z.avatars = nil
}
