package zone

import (
	"math"

	"github.com/backusd/cubeworld/types"
)

type CameraDirection uint8

const (
	Forward CameraDirection = iota
	Backward
	Up
	Down
)

// Pitch is limited so the camera never flips over.
const maxPitch float32 = 90

// The camera type tracks the avatar's eye. Rotation holds pitch, yaw and
// roll in degrees.
type Camera struct {
	Position types.Vec3
	Rotation types.Vec3
}

func NewCamera(pos types.Vec3) *Camera {
	return &Camera{
		Position: pos,
	}
}

// Get the unit vector the camera faces on the ground plane.
func (c *Camera) Heading() types.Vec3 {
	yaw := float64(types.Radians(c.Rotation[1]))
	return types.XYZ(float32(math.Sin(yaw)), 0, float32(math.Cos(yaw)))
}

// Move the camera along its heading or the vertical axis.
func (c *Camera) Move(dir CameraDirection, amount float32) {
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Heading().Mul(amount))
	case Backward:
		c.Position = c.Position.Sub(c.Heading().Mul(amount))
	case Up:
		c.Position[1] += amount
	case Down:
		c.Position[1] -= amount
	}
}

// Rotate around the vertical axis keeping yaw in [0, 360).
func (c *Camera) Turn(degrees float32) {
	yaw := math.Mod(float64(c.Rotation[1]+degrees), 360)
	if yaw < 0 {
		yaw += 360
	}
	c.Rotation[1] = float32(yaw)
}

// Tilt the camera up (positive) or down.
func (c *Camera) Look(degrees float32) {
	c.Rotation[0] = types.Clamp(c.Rotation[0]+degrees, -maxPitch, maxPitch)
}
