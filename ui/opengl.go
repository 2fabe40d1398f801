package ui

import (
	"image"
	"image/color"

	"github.com/backusd/cubeworld/types"
	"github.com/go-gl/gl/v2.1/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type glPainter struct{}

func (glPainter) beginOverlay(w, h int) {
	// Setup ortho projection for UI bits
	gl.PushAttrib(gl.ENABLE_BIT | gl.LINE_BIT | gl.CURRENT_BIT | gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	gl.LoadIdentity()
	gl.Ortho(0, float64(w), float64(h), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.LoadIdentity()
}

func (glPainter) bar(x, y, w, h, fill float32, color types.Vec3) {
	fill = types.Clamp(fill, 0, 1)

	gl.Color3fv(&color[0])
	gl.Begin(gl.QUADS)
	gl.Vertex2f(x, y)
	gl.Vertex2f(x+w*fill, y)
	gl.Vertex2f(x+w*fill, y+h)
	gl.Vertex2f(x, y+h)
	gl.End()

	gl.LineWidth(1.0)
	gl.Begin(gl.LINE_LOOP)
	gl.Vertex2f(x, y)
	gl.Vertex2f(x+w, y)
	gl.Vertex2f(x+w, y+h)
	gl.Vertex2f(x, y+h)
	gl.End()
}

// Rasterize s with the builtin bitmap font and blit it with its top left
// corner at (x, y).
func (glPainter) text(x, y float32, s string, c types.Vec3) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	h := face.Metrics().Height.Ceil()
	if w <= 0 || h <= 0 {
		return
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst: img,
		Src: image.NewUniform(color.RGBA{
			R: uint8(c[0] * 255),
			G: uint8(c[1] * 255),
			B: uint8(c[2] * 255),
			A: 255,
		}),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	// Image rows run top to bottom which matches the overlay's y axis once
	// the pixel zoom is flipped.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.RasterPos2f(x, y)
	gl.PixelZoom(1, -1)
	gl.DrawPixels(int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelZoom(1, 1)
	gl.Disable(gl.BLEND)
}

func (glPainter) series(s *stackedSeries, rY, rHeight float32) {
	scale := s.Scale(rHeight)

	gl.LineWidth(1.0)
	gl.Begin(gl.LINES)
	for x := 0; x < s.Len(); x++ {
		y := rY + rHeight
		for seriesIndex := range s.series {
			sH := s.series[seriesIndex][x] * scale
			gl.Color3fv(&s.colors[seriesIndex][0])
			gl.Vertex2f(float32(x), y)
			gl.Vertex2f(float32(x), y-sH)
			y -= sH
		}
	}
	gl.End()
}

func (glPainter) endOverlay() {
	gl.MatrixMode(gl.MODELVIEW)
	gl.PopMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
	gl.MatrixMode(gl.MODELVIEW)
	gl.PopAttrib()
}
