// Package window owns the native glfw window the client renders into.
package window

import (
	"errors"
	"fmt"

	"github.com/backusd/cubeworld/log"
	"github.com/backusd/cubeworld/subsystem"
	"github.com/go-gl/glfw/v3.1/glfw"
)

var ErrNoNativeWindow = errors.New("window: host does not expose a glfw window")

type Options struct {
	Title      string
	Width      int
	Height     int
	FullScreen bool
}

// Window wraps a glfw window. Only one window may exist per process and all
// calls must happen on the main OS thread.
type Window struct {
	logger log.Logger
	handle *glfw.Window

	onResize func(w, h int)
	onClose  func()
}

// Create a new window with an OpenGL 2.1 context.
func New(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	var monitor *glfw.Monitor
	if opts.FullScreen {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			opts.Width, opts.Height = mode.Width, mode.Height
		}
	}

	handle, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create opengl window: %s", err.Error())
	}

	w := &Window{
		logger: log.New("window"),
		handle: handle,
	}
	handle.SetFramebufferSizeCallback(w.onFramebufferSize)
	handle.SetCloseCallback(w.onCloseRequest)

	w.logger.Infof("created %dx%d window (full screen: %t)", opts.Width, opts.Height, opts.FullScreen)
	return w, nil
}

// Get the client area size.
func (w *Window) Size() (int, int) {
	return w.handle.GetFramebufferSize()
}

// Get the underlying glfw handle.
func (w *Window) GLFWWindow() *glfw.Window {
	return w.handle
}

// Register a callback invoked when the client area is resized.
func (w *Window) OnResize(fn func(w, h int)) {
	w.onResize = fn
}

// Register a callback invoked when the user asks to close the window. The
// callback runs before the window is torn down.
func (w *Window) OnClose(fn func()) {
	w.onClose = fn
}

// Destroy the window and terminate glfw. Graphics resources must have been
// released by the caller.
func (w *Window) Close() {
	if w.handle == nil {
		return
	}
	w.handle.Destroy()
	w.handle = nil
	glfw.Terminate()
}

func (w *Window) onFramebufferSize(_ *glfw.Window, width, height int) {
	w.logger.Debugf("resized to %dx%d", width, height)
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *Window) onCloseRequest(_ *glfw.Window) {
	w.logger.Debug("close requested")
	if w.onClose != nil {
		w.onClose()
	}
}

// Native is implemented by hosts backed by a glfw window.
type Native interface {
	GLFWWindow() *glfw.Window
}

// Recover the glfw handle from a host.
func GLFW(host subsystem.Host) (*glfw.Window, error) {
	native, ok := host.(Native)
	if !ok || native.GLFWWindow() == nil {
		return nil, ErrNoNativeWindow
	}
	return native.GLFWWindow(), nil
}
