package scene

import (
	"xr-engine/core"
)

// Scene manages a collection of nodes and the active camera
type Scene struct {
	Root     *Node
	Camera   *Camera
	SkyColor core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:     NewNode("Root"),
		SkyColor: core.Color{R: 0.1, G: 0.1, B: 0.12, A: 1.0},
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	s.Root.RemoveChild(node)
}

// GetVisibleNodes returns every visible node with render primitives whose
// ancestors are all visible, in depth-first order.
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node

	s.Root.TraverseVisible(func(node *Node) {
		if len(node.RenderPrimitives) > 0 {
			visible = append(visible, node)
		}
	})

	return visible
}
