// Package input samples keyboard and mouse state from the host window once
// per frame and exposes it as logical actions.
package input

import (
	"errors"

	"github.com/backusd/cubeworld/log"
	"github.com/backusd/cubeworld/subsystem"
	"github.com/backusd/cubeworld/types"
	"github.com/backusd/cubeworld/window"
	"github.com/go-gl/glfw/v3.1/glfw"
)

var ErrWindowClosed = errors.New("input: window was closed")

// keySource abstracts the glfw calls so the action state machine can be
// exercised without a display.
type keySource interface {
	PollEvents()
	ShouldClose() bool
	KeyDown(glfw.Key) bool
	ButtonDown(glfw.MouseButton) bool
	CursorPos() (float64, float64)
}

type Input struct {
	logger   log.Logger
	src      keySource
	bindings map[subsystem.Action][]glfw.Key
	buttons  map[subsystem.Action][]glfw.MouseButton

	pressed     [subsystem.NumActions]bool
	prevPressed [subsystem.NumActions]bool
	cursor      types.Vec2
	width       int
	height      int
}

func New() *Input {
	return &Input{
		logger:   log.New("input"),
		bindings: defaultBindings,
		buttons:  defaultButtonBindings,
	}
}

func (in *Input) Init(host subsystem.Host, w, h int) error {
	handle, err := window.GLFW(host)
	if err != nil {
		return err
	}

	handle.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	in.init(glfwSource{handle}, w, h)
	return nil
}

func (in *Input) init(src keySource, w, h int) {
	in.src = src
	in.width, in.height = w, h
	in.pressed = [subsystem.NumActions]bool{}
	in.prevPressed = [subsystem.NumActions]bool{}
}

// Pump window events and sample the action state for this frame.
func (in *Input) Frame() error {
	in.src.PollEvents()
	if in.src.ShouldClose() {
		return ErrWindowClosed
	}

	in.prevPressed = in.pressed
	for action := subsystem.Action(0); action < subsystem.NumActions; action++ {
		in.pressed[action] = in.bindingDown(action)
	}

	x, y := in.src.CursorPos()
	in.cursor = types.XY(
		types.Clamp(float32(x), 0, float32(in.width)),
		types.Clamp(float32(y), 0, float32(in.height)),
	)
	return nil
}

// Clamp the cursor to the new client area from the next frame on.
func (in *Input) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	in.width, in.height = w, h
}

func (in *Input) bindingDown(action subsystem.Action) bool {
	for _, key := range in.bindings[action] {
		if in.src.KeyDown(key) {
			return true
		}
	}
	for _, button := range in.buttons[action] {
		if in.src.ButtonDown(button) {
			return true
		}
	}
	return false
}

func (in *Input) CancelRequested() bool {
	return in.pressed[subsystem.Cancel]
}

func (in *Input) Pressed(action subsystem.Action) bool {
	if action >= subsystem.NumActions {
		return false
	}
	return in.pressed[action]
}

func (in *Input) Triggered(action subsystem.Action) bool {
	if action >= subsystem.NumActions {
		return false
	}
	return in.pressed[action] && !in.prevPressed[action]
}

func (in *Input) Cursor() types.Vec2 {
	return in.cursor
}

func (in *Input) Shutdown() {
	in.src = nil
}

type glfwSource struct {
	w *glfw.Window
}

func (s glfwSource) PollEvents() {
	glfw.PollEvents()
}

func (s glfwSource) ShouldClose() bool {
	return s.w.ShouldClose()
}

func (s glfwSource) KeyDown(key glfw.Key) bool {
	return s.w.GetKey(key) == glfw.Press
}

func (s glfwSource) ButtonDown(button glfw.MouseButton) bool {
	return s.w.GetMouseButton(button) == glfw.Press
}

func (s glfwSource) CursorPos() (float64, float64) {
	return s.w.GetCursorPos()
}
