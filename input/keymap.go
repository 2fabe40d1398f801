package input

import (
	"github.com/backusd/cubeworld/subsystem"
	"github.com/go-gl/glfw/v3.1/glfw"
)

// Default key bindings. An action is active if any of its keys or buttons is
// down.
var defaultBindings = map[subsystem.Action][]glfw.Key{
	subsystem.MoveForward:  {glfw.KeyUp, glfw.KeyW},
	subsystem.MoveBackward: {glfw.KeyDown, glfw.KeyS},
	subsystem.TurnLeft:     {glfw.KeyLeft, glfw.KeyA},
	subsystem.TurnRight:    {glfw.KeyRight, glfw.KeyD},
	subsystem.LookUp:       {glfw.KeyPageUp},
	subsystem.LookDown:     {glfw.KeyPageDown},
	subsystem.MoveUp:       {glfw.KeyE},
	subsystem.MoveDown:     {glfw.KeyQ},
	subsystem.Jump:         {glfw.KeySpace},
	subsystem.ToggleUI:     {glfw.KeyTab},
	subsystem.Cancel:       {glfw.KeyEscape},
}

// Default mouse button bindings.
var defaultButtonBindings = map[subsystem.Action][]glfw.MouseButton{
	subsystem.FreeLook: {glfw.MouseButtonLeft},
}
