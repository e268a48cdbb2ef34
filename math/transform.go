// Package math holds the transform helpers shared by the scene graph and the
// input visualizers. Vector and matrix types come from mgl32.
package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

var (
	Vec3Zero    = mgl32.Vec3{0, 0, 0}
	Vec3One     = mgl32.Vec3{1, 1, 1}
	Vec3Up      = mgl32.Vec3{0, 1, 0}
	Vec3Forward = mgl32.Vec3{0, 0, -1}
)

// Compose builds a local matrix from translation, rotation and scale (T * R * S).
func Compose(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(translation.X(), translation.Y(), translation.Z())
	r := rotation.Normalize().Mat4()
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(r).Mul4(s)
}

// Decompose splits an affine matrix into translation, rotation and scale.
// Shear is discarded. A negative determinant flips the X scale.
func Decompose(m mgl32.Mat4) (translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	translation = m.Col(3).Vec3()

	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if m.Det() < 0 {
		sx = -sx
	}
	scale = mgl32.Vec3{sx, sy, sz}

	if sx == 0 || sy == 0 || sz == 0 {
		return translation, mgl32.QuatIdent(), scale
	}

	var r mgl32.Mat4
	r.SetCol(0, m.Col(0).Mul(1/sx))
	r.SetCol(1, m.Col(1).Mul(1/sy))
	r.SetCol(2, m.Col(2).Mul(1/sz))
	r.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	rotation = mgl32.Mat4ToQuat(r).Normalize()
	return translation, rotation, scale
}

// TransformPoint applies m to p as a position (w = 1). The result is
// divided by the transformed w unless that is zero.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}

// PoseLookAt returns the model matrix of an object at eye whose -Z axis points
// at target. It is the inverse of a view matrix built from the same vectors.
func PoseLookAt(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, target, up).Inv()
}
