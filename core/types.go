package core

import (
	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// ColorFromArray converts an RGBA array as found in config files and glTF
// factors.
func ColorFromArray(c [4]float32) Color {
	return Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: mgl32.QuatIdent(),
		Scale:    math.Vec3One,
	}
}

func (t Transform) GetMatrix() mgl32.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// TransformFromMatrix is the inverse of GetMatrix for affine matrices
// without shear.
func TransformFromMatrix(m mgl32.Mat4) Transform {
	p, r, s := math.Decompose(m)
	return Transform{Position: p, Rotation: r, Scale: s}
}

func (t Transform) GetForward() mgl32.Vec3 {
	return t.Rotation.Rotate(math.Vec3Forward)
}
