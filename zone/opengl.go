package zone

import (
	"math"

	"github.com/backusd/cubeworld/subsystem"
	"github.com/go-gl/gl/v2.1/gl"
)

const (
	fieldOfView float64 = 45

	// Spacing between ground grid lines.
	gridStep float32 = 4

	avatarHalfWidth float32 = 0.5
	avatarHeight    float32 = 2
)

type glPainter struct{}

func (glPainter) setupView(cam *Camera, aspect, near, depth float32) {
	top := float64(near) * math.Tan(fieldOfView*math.Pi/360)
	right := top * float64(aspect)

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Frustum(-right, right, -top, top, float64(near), float64(depth))

	// The view transform is the inverse of the camera transform. Yaw is
	// measured clockwise from +Z so the camera looks down +Z at zero yaw.
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
	gl.Rotatef(-cam.Rotation[0], 1, 0, 0)
	gl.Rotatef(180-cam.Rotation[1], 0, 1, 0)
	gl.Translatef(-cam.Position[0], -cam.Position[1], -cam.Position[2])
}

func (glPainter) ground(extent float32) {
	gl.LineWidth(1.0)
	gl.Color3f(0.15, 0.35, 0.15)
	gl.Begin(gl.LINES)
	for v := -extent; v <= extent; v += gridStep {
		gl.Vertex3f(v, 0, -extent)
		gl.Vertex3f(v, 0, extent)
		gl.Vertex3f(-extent, 0, v)
		gl.Vertex3f(extent, 0, v)
	}
	gl.End()
}

func (glPainter) avatar(pos subsystem.PositionUpdate, state subsystem.StateChange) {
	switch state {
	case subsystem.AvatarWalking:
		gl.Color3f(0.9, 0.8, 0.2)
	case subsystem.AvatarJumping:
		gl.Color3f(0.9, 0.3, 0.2)
	default:
		gl.Color3f(0.7, 0.7, 0.8)
	}

	gl.PushMatrix()
	gl.Translatef(pos.Position[0], pos.Position[1]-avatarHeight, pos.Position[2])
	gl.Rotatef(pos.Rotation[1], 0, 1, 0)

	w, h := avatarHalfWidth, avatarHeight
	gl.Begin(gl.QUADS)
	for _, face := range boxFaces {
		for _, corner := range face {
			gl.Vertex3f(corner[0]*w, corner[1]*h, corner[2]*w)
		}
	}
	gl.End()
	gl.PopMatrix()
}

// Unit box faces, counter-clockwise when seen from outside. Y spans [0, 1].
var boxFaces = [6][4][3]float32{
	{{-1, 0, 1}, {1, 0, 1}, {1, 1, 1}, {-1, 1, 1}},
	{{1, 0, -1}, {-1, 0, -1}, {-1, 1, -1}, {1, 1, -1}},
	{{-1, 0, -1}, {-1, 0, 1}, {-1, 1, 1}, {-1, 1, -1}},
	{{1, 0, 1}, {1, 0, -1}, {1, 1, -1}, {1, 1, 1}},
	{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
	{{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}},
}
