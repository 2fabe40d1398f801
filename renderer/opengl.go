package renderer

import (
	"fmt"

	"github.com/backusd/cubeworld/log"
	"github.com/backusd/cubeworld/subsystem"
	"github.com/backusd/cubeworld/window"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.1/glfw"
)

// An opengl renderer presenting into the host's glfw window.
type glRenderer struct {
	logger log.Logger

	window  *glfw.Window
	options subsystem.DisplayOptions
	frameW  int32
	frameH  int32
}

// Create a new opengl renderer. It must be initialized before use.
func NewOpenGL() subsystem.Renderer {
	return &glRenderer{
		logger: log.New("renderer"),
	}
}

func (r *glRenderer) Init(host subsystem.Host, opts subsystem.DisplayOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return ErrInvalidFrameSize
	}

	handle, err := window.GLFW(host)
	if err != nil {
		return err
	}
	handle.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	r.window = handle
	r.options = opts

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	w, h := host.Size()
	r.Resize(w, h)

	r.logger.Noticef("opengl %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return nil
}

func (r *glRenderer) BeginScene(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *glRenderer) EndScene() {
	if r.window == nil {
		return
	}
	r.window.SwapBuffers()
}

func (r *glRenderer) Resize(w, h int) {
	if w <= 0 || h <= 0 || r.window == nil {
		// Minimized windows report a zero sized framebuffer.
		return
	}
	r.frameW, r.frameH = int32(w), int32(h)
	gl.Viewport(0, 0, r.frameW, r.frameH)
}

// Release the context. The window itself is owned by the host.
func (r *glRenderer) Shutdown() {
	if r.window == nil {
		return
	}
	gl.Finish()
	r.window = nil
}
