package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/core"
	"xr-engine/scene"
)

// CameraController handles WASD movement and right-drag mouse look.
type CameraController struct {
	moveSpeed  float32
	lookSpeed  float32
	lastMouseX float64
	lastMouseY float64
	firstMouse bool
}

func NewCameraController() *CameraController {
	return &CameraController{
		moveSpeed:  2.0,
		lookSpeed:  0.004,
		firstMouse: true,
	}
}

func (cc *CameraController) Update(window *core.Window, camera *scene.Camera, deltaTime float32) {
	// Cap deltaTime to avoid huge steps on first frames or hitches
	if deltaTime > 0.05 {
		deltaTime = 0.05
	}

	if window.IsMouseButtonPressed(core.MouseButtonRight) {
		mouseX, mouseY := window.GetCursorPos()
		if cc.firstMouse {
			cc.lastMouseX = mouseX
			cc.lastMouseY = mouseY
			cc.firstMouse = false
		}
		camera.Rotate(
			-float32(mouseX-cc.lastMouseX)*cc.lookSpeed,
			-float32(mouseY-cc.lastMouseY)*cc.lookSpeed,
		)
		cc.lastMouseX = mouseX
		cc.lastMouseY = mouseY
	} else {
		cc.firstMouse = true
	}

	// Horizontal move direction, ignoring pitch so walking stays level
	yaw := mgl32.QuatRotate(camera.Yaw, mgl32.Vec3{0, 1, 0})
	forward := yaw.Rotate(mgl32.Vec3{0, 0, -1})
	right := yaw.Rotate(mgl32.Vec3{1, 0, 0})

	move := mgl32.Vec3{}
	if window.IsKeyPressed(core.KeyW) {
		move = move.Add(forward)
	}
	if window.IsKeyPressed(core.KeyS) {
		move = move.Sub(forward)
	}
	if window.IsKeyPressed(core.KeyD) {
		move = move.Add(right)
	}
	if window.IsKeyPressed(core.KeyA) {
		move = move.Sub(right)
	}
	if move.Len() > 0 {
		camera.Position = camera.Position.Add(move.Normalize().Mul(cc.moveSpeed * deltaTime))
	}
}
