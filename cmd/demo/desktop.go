package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/core"
	"xr-engine/gfx"
	"xr-engine/materials"
	"xr-engine/scene"
	"xr-engine/xr"
)

// handOffset places the simulated controller below and to the right of
// the eye, slightly forward.
var handOffset = mgl32.Translate3D(0.2, -0.25, -0.4)

// desktopInput fakes XR input sources from mouse and keyboard:
// a screen pointer while the left button is held, a head gaze and a
// right-hand controller that follow the camera.
type desktopInput struct {
	frame  *xr.SimulatedFrame
	screen *xr.SimulatedSource
	gaze   *xr.SimulatedSource
	hand   *xr.SimulatedSource

	GazeEnabled bool
	HandEnabled bool
}

func newDesktopInput() *desktopInput {
	frame := &xr.SimulatedFrame{}
	d := &desktopInput{
		frame:       frame,
		screen:      frame.Add(&xr.InputSource{PointerOrigin: xr.PointerOriginScreen}),
		gaze:        frame.Add(&xr.InputSource{PointerOrigin: xr.PointerOriginHead}),
		hand:        frame.Add(&xr.InputSource{Handedness: xr.HandednessRight, PointerOrigin: xr.PointerOriginHand}),
		HandEnabled: true,
	}
	return d
}

func (d *desktopInput) Frame() xr.Frame { return d.frame }

// Update recomputes every source's pose from the camera and the mouse
// position in window pixels.
func (d *desktopInput) Update(cam *scene.Camera, mouseX, mouseY, width, height float32, pressed bool) {
	pose := cam.Pose()

	d.screen.Tracked = pressed
	if pressed {
		ray := cam.ScreenRay(mouseX, mouseY, width, height)
		d.screen.Pointer = &ray
	}

	d.gaze.Tracked = d.GazeEnabled
	d.gaze.Pointer = &pose

	d.hand.Tracked = d.HandEnabled
	grip := pose.Mul4(handOffset)
	pointer := grip
	d.hand.Grip = &grip
	d.hand.Pointer = &pointer
}

// toggle flips on the press edge of a held key.
type toggle struct {
	wasDown bool
}

func (t *toggle) Pressed(down bool) bool {
	fired := down && !t.wasDown
	t.wasDown = down
	return fired
}

// defaultController builds a plain grip-sized body used when no controller
// mesh is configured.
func defaultController(r gfx.Renderer) (*scene.Node, error) {
	mat := materials.NewBasicMaterial("controller")
	mat.DiffuseColor = core.Color{R: 0.25, G: 0.25, B: 0.28, A: 1}

	body, err := scene.NewMeshNode(r, scene.CreateCylinder(0.02, 0.12, 16), mat)
	if err != nil {
		return nil, fmt.Errorf("controller body: %w", err)
	}
	body.Name = "controller"

	trigger, err := scene.NewMeshNode(r, scene.CreateCube(0.02), mat)
	if err != nil {
		return nil, fmt.Errorf("controller trigger: %w", err)
	}
	trigger.SetTranslation(mgl32.Vec3{0, -0.02, -0.03})
	body.AddChild(trigger)
	return body, nil
}

// floorGrid is shown when no environment is loaded.
func floorGrid(r gfx.Renderer) (*scene.Node, error) {
	mat := materials.NewBasicMaterial("grid")
	mat.DiffuseColor = core.Color{R: 0.35, G: 0.35, B: 0.35, A: 1}
	return scene.NewMeshNode(r, scene.CreateGrid(20, 20), mat)
}
