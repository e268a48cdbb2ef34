package scene

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/math"
)

// Camera is a yaw/pitch fly camera. In the desktop viewer it stands in for
// the headset, so its pose doubles as the head pose for gaze input.
type Camera struct {
	Position    mgl32.Vec3
	Yaw         float32 // radians, 0 looks down -Z
	Pitch       float32 // radians, clamped to ±1.5
	FOV         float32 // vertical, radians
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Position:    math.Vec3Zero,
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
	}
}

func (c *Camera) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	if c.Pitch > 1.5 {
		c.Pitch = 1.5
	}
	if c.Pitch < -1.5 {
		c.Pitch = -1.5
	}
}

func (c *Camera) Orientation() mgl32.Quat {
	yaw := mgl32.QuatRotate(c.Yaw, mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(c.Pitch, mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Pose is the camera's world matrix.
func (c *Camera) Pose() mgl32.Mat4 {
	return math.Compose(c.Position, c.Orientation(), math.Vec3One)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return c.Pose().Inv()
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetForward() mgl32.Vec3 {
	return c.Orientation().Rotate(math.Vec3Forward)
}

// ScreenRay returns a pointer pose anchored at the camera whose -Z axis
// passes through the window pixel (x, y).
func (c *Camera) ScreenRay(x, y, width, height float32) mgl32.Mat4 {
	if width <= 0 || height <= 0 {
		return c.Pose()
	}
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height
	tanHalf := float32(stdmath.Tan(float64(c.FOV) / 2))

	local := mgl32.Vec3{ndcX * tanHalf * c.AspectRatio, ndcY * tanHalf, -1}
	dir := c.Orientation().Rotate(local).Normalize()
	return math.PoseLookAt(c.Position, c.Position.Add(dir), math.Vec3Up)
}
