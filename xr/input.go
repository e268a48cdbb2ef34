// Package xr models the per-frame input state an immersive session exposes:
// the active input sources and their poses relative to a frame of reference.
package xr

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PointerOrigin says what a pointer ray is anchored to.
type PointerOrigin string

const (
	PointerOriginHand   PointerOrigin = "hand"
	PointerOriginHead   PointerOrigin = "head"
	PointerOriginScreen PointerOrigin = "screen"
)

type Handedness string

const (
	HandednessNone  Handedness = ""
	HandednessLeft  Handedness = "left"
	HandednessRight Handedness = "right"
)

type InputSource struct {
	Handedness    Handedness
	PointerOrigin PointerOrigin
}

// InputPose holds the matrices available for a source this frame. Either
// may be nil: gaze sources have no grip, untracked controllers no pointer.
type InputPose struct {
	GripMatrix    *mgl32.Mat4
	PointerMatrix *mgl32.Mat4
}

// FrameOfReference is the coordinate system poses are reported in. Origin
// is the reference space's pose in world coordinates.
type FrameOfReference struct {
	Type   string
	Origin mgl32.Mat4
}

func NewFrameOfReference(kind string) *FrameOfReference {
	return &FrameOfReference{Type: kind, Origin: mgl32.Ident4()}
}

// Frame is the input half of one rendered frame.
type Frame interface {
	InputSources() []*InputSource
	// InputPose returns nil when the source cannot be located this frame.
	InputPose(source *InputSource, ref *FrameOfReference) *InputPose
}
