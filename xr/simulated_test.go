package xr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedFramePoses(t *testing.T) {
	var frame SimulatedFrame
	hand := frame.Add(&InputSource{Handedness: HandednessRight, PointerOrigin: PointerOriginHand})
	grip := mgl32.Translate3D(0.2, 1.0, -0.3)
	hand.Grip = &grip
	hand.Pointer = &grip

	gaze := frame.Add(&InputSource{PointerOrigin: PointerOriginHead})

	sources := frame.InputSources()
	require.Len(t, sources, 2)
	assert.Same(t, hand.Source, sources[0])

	pose := frame.InputPose(sources[0], nil)
	require.NotNil(t, pose)
	require.NotNil(t, pose.GripMatrix)
	assert.Equal(t, grip, *pose.GripMatrix)

	// No matrices yet: no pose.
	assert.Nil(t, frame.InputPose(gaze.Source, nil))

	hand.Tracked = false
	assert.Nil(t, frame.InputPose(sources[0], nil))

	assert.Nil(t, frame.InputPose(&InputSource{}, nil))
}

func TestSimulatedFrameReferenceSpace(t *testing.T) {
	var frame SimulatedFrame
	src := frame.Add(&InputSource{PointerOrigin: PointerOriginScreen})
	pointer := mgl32.Translate3D(0, 1.6, 0)
	src.Pointer = &pointer

	ref := NewFrameOfReference("stage")
	ref.Origin = mgl32.Translate3D(0, 1.6, 0)

	pose := frame.InputPose(src.Source, ref)
	require.NotNil(t, pose)
	assert.Nil(t, pose.GripMatrix)
	require.NotNil(t, pose.PointerMatrix)
	assert.True(t, pose.PointerMatrix.ApproxEqualThreshold(mgl32.Ident4(), 1e-6))
}
