package xr

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SimulatedSource is an input source with world-space poses set directly by
// the application, e.g. from mouse and keyboard on a desktop.
type SimulatedSource struct {
	Source  *InputSource
	Grip    *mgl32.Mat4
	Pointer *mgl32.Mat4
	Tracked bool
}

// SimulatedFrame implements Frame over a fixed list of sources.
type SimulatedFrame struct {
	Sources []*SimulatedSource
}

func (f *SimulatedFrame) Add(source *InputSource) *SimulatedSource {
	s := &SimulatedSource{Source: source, Tracked: true}
	f.Sources = append(f.Sources, s)
	return s
}

func (f *SimulatedFrame) InputSources() []*InputSource {
	out := make([]*InputSource, 0, len(f.Sources))
	for _, s := range f.Sources {
		out = append(out, s.Source)
	}
	return out
}

// InputPose re-expresses the source's world poses in ref. Untracked or
// unknown sources have no pose.
func (f *SimulatedFrame) InputPose(source *InputSource, ref *FrameOfReference) *InputPose {
	for _, s := range f.Sources {
		if s.Source != source {
			continue
		}
		if !s.Tracked || (s.Grip == nil && s.Pointer == nil) {
			return nil
		}
		toRef := mgl32.Ident4()
		if ref != nil {
			toRef = ref.Origin.Inv()
		}
		pose := &InputPose{}
		if s.Grip != nil {
			m := toRef.Mul4(*s.Grip)
			pose.GripMatrix = &m
		}
		if s.Pointer != nil {
			m := toRef.Mul4(*s.Pointer)
			pose.PointerMatrix = &m
		}
		return pose
	}
	return nil
}
