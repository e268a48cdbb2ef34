package scene

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/core"
	"xr-engine/gfx"
)

// Node represents an object in the scene graph.
//
// A node is placed either by its Transform (translation, rotation, scale) or
// by an explicit matrix set with SetMatrix. While a matrix is set, Transform
// is stale; the TRS setters fold the matrix back into Transform first.
type Node struct {
	Name      string
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Visible   bool
	Id        uint32

	RenderPrimitives []*gfx.RenderPrimitive

	matrix    mgl32.Mat4
	hasMatrix bool

	// Cached world transform
	worldMatrixDirty bool
	worldMatrix      mgl32.Mat4
}

var nodeIdCounter atomic.Uint32

func NewNode(name string) *Node {
	return &Node{
		Name:             name,
		Transform:        core.NewTransform(),
		Children:         make([]*Node, 0),
		Visible:          true,
		Id:               nodeIdCounter.Add(1),
		worldMatrixDirty: true,
	}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	child.MarkWorldMatrixDirty()
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.MarkWorldMatrixDirty()
			return
		}
	}
}

func (n *Node) AddRenderPrimitive(rp *gfx.RenderPrimitive) {
	n.RenderPrimitives = append(n.RenderPrimitives, rp)
}

// SetMatrix places the node with an explicit local matrix.
func (n *Node) SetMatrix(m mgl32.Mat4) {
	n.matrix = m
	n.hasMatrix = true
	n.MarkWorldMatrixDirty()
}

// HasMatrix reports whether the node is currently placed by SetMatrix.
func (n *Node) HasMatrix() bool {
	return n.hasMatrix
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	if n.hasMatrix {
		return n.matrix
	}
	return n.Transform.GetMatrix()
}

// foldMatrix moves an explicit matrix into Transform so that a TRS setter
// only changes the component it names.
func (n *Node) foldMatrix() {
	if n.hasMatrix {
		n.Transform = core.TransformFromMatrix(n.matrix)
		n.hasMatrix = false
	}
}

// SetTranslation places the node at pos, keeping rotation and scale.
func (n *Node) SetTranslation(pos mgl32.Vec3) {
	n.foldMatrix()
	n.Transform.Position = pos
	n.MarkWorldMatrixDirty()
}

func (n *Node) Translation() mgl32.Vec3 {
	if n.hasMatrix {
		return n.matrix.Col(3).Vec3()
	}
	return n.Transform.Position
}

func (n *Node) SetRotation(rot mgl32.Quat) {
	n.foldMatrix()
	n.Transform.Rotation = rot
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetScale(scale mgl32.Vec3) {
	n.foldMatrix()
	n.Transform.Scale = scale
	n.MarkWorldMatrixDirty()
}

func (n *Node) GetWorldMatrix() mgl32.Mat4 {
	if n.worldMatrixDirty {
		local := n.LocalMatrix()
		if n.Parent != nil {
			n.worldMatrix = n.Parent.GetWorldMatrix().Mul4(local)
		} else {
			n.worldMatrix = local
		}
		n.worldMatrixDirty = false
	}
	return n.worldMatrix
}

func (n *Node) MarkWorldMatrixDirty() {
	n.worldMatrixDirty = true
	for _, child := range n.Children {
		child.MarkWorldMatrixDirty()
	}
}

// Clone copies the node and its subtree. Render primitives are shared with
// the original; the clone has no parent.
func (n *Node) Clone() *Node {
	c := NewNode(n.Name)
	c.Transform = n.Transform
	c.Visible = n.Visible
	c.matrix = n.matrix
	c.hasMatrix = n.hasMatrix
	c.RenderPrimitives = append([]*gfx.RenderPrimitive(nil), n.RenderPrimitives...)
	for _, child := range n.Children {
		c.AddChild(child.Clone())
	}
	return c
}

// Traverse visits all nodes in the graph
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// TraverseVisible visits visible nodes, skipping the subtrees of hidden ones.
func (n *Node) TraverseVisible(callback func(*Node)) {
	if !n.Visible {
		return
	}
	callback(n)
	for _, child := range n.Children {
		child.TraverseVisible(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
