package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xr-engine/gfx"
	"xr-engine/input"
	"xr-engine/scene"
	"xr-engine/xr"
)

func TestToggleFiresOnPressEdge(t *testing.T) {
	var k toggle
	assert.True(t, k.Pressed(true))
	assert.False(t, k.Pressed(true))
	assert.False(t, k.Pressed(false))
	assert.True(t, k.Pressed(true))
}

func TestDesktopInputSources(t *testing.T) {
	cam := scene.NewCamera(mgl32.DegToRad(70), 1, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 1.6, 0}

	d := newDesktopInput()
	d.Update(cam, 50, 50, 100, 100, false)

	frame := d.Frame()
	ref := xr.NewFrameOfReference("stage")
	sources := frame.InputSources()
	require.Len(t, sources, 3)

	assert.Nil(t, frame.InputPose(sources[0], ref), "screen pointer needs the button held")
	assert.Nil(t, frame.InputPose(sources[1], ref), "gaze starts disabled")

	hand := frame.InputPose(sources[2], ref)
	require.NotNil(t, hand)
	require.NotNil(t, hand.GripMatrix)
	assert.Equal(t, cam.Pose().Mul4(handOffset), *hand.GripMatrix)

	d.GazeEnabled = true
	d.Update(cam, 50, 50, 100, 100, true)

	screen := frame.InputPose(sources[0], ref)
	require.NotNil(t, screen)
	// mouse at the centre points straight ahead
	origin := screen.PointerMatrix.Col(3).Vec3()
	fwd := screen.PointerMatrix.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
	assert.InDeltaSlice(t, []float32{0, 1.6, 0}, origin[:], 1e-5)
	assert.InDeltaSlice(t, []float32{0, 0, -1}, fwd[:], 1e-5)

	assert.NotNil(t, frame.InputPose(sources[1], ref))
}

func TestDesktopInputDrivesVisuals(t *testing.T) {
	cam := scene.NewCamera(mgl32.DegToRad(70), 1, 0.1, 100)
	d := newDesktopInput()
	d.GazeEnabled = true
	d.Update(cam, 10, 10, 100, 100, true)

	ir := input.NewInputRenderer(gfx.NewMemoryRenderer(), input.DefaultConfig())
	ir.SetControllerMesh(scene.NewNode("controller"))
	require.NoError(t, ir.AddInputSources(d.Frame(), nil))

	assert.Equal(t, 1, ir.Pool(input.Controller).Active())
	assert.Equal(t, 1, ir.Pool(input.Laser).Active())
	assert.Equal(t, 3, ir.Pool(input.Cursor).Active())
}

func TestDefaultController(t *testing.T) {
	mem := gfx.NewMemoryRenderer()
	node, err := defaultController(mem)
	require.NoError(t, err)

	assert.Equal(t, "controller", node.Name)
	require.Len(t, node.Children, 1)
	assert.Len(t, node.RenderPrimitives, 1)
	assert.Len(t, mem.RenderPrimitives(), 2)

	// the body and the trigger share one material
	assert.Same(t, node.RenderPrimitives[0].Material, node.Children[0].RenderPrimitives[0].Material)
}

func TestFloorGrid(t *testing.T) {
	node, err := floorGrid(gfx.NewMemoryRenderer())
	require.NoError(t, err)
	require.Len(t, node.RenderPrimitives, 1)
	assert.Equal(t, gfx.DrawLines, node.RenderPrimitives[0].Primitive.Mode)
}
