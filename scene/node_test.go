package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xr-engine/gfx"
	"xr-engine/materials"
)

const eps = 1e-5

func TestNodeHierarchyWorldMatrix(t *testing.T) {
	parent := NewNode("parent")
	parent.SetTranslation(mgl32.Vec3{10, 0, 0})

	child := NewNode("child")
	child.SetTranslation(mgl32.Vec3{0, 5, 0})
	parent.AddChild(child)

	world := child.GetWorldMatrix().Col(3).Vec3()
	assert.True(t, world.ApproxEqualThreshold(mgl32.Vec3{10, 5, 0}, eps), "world %v", world)

	// Moving the parent invalidates the cached child matrix.
	parent.SetTranslation(mgl32.Vec3{0, 0, 0})
	world = child.GetWorldMatrix().Col(3).Vec3()
	assert.True(t, world.ApproxEqualThreshold(mgl32.Vec3{0, 5, 0}, eps), "world %v", world)
}

func TestNodeReparent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")

	a.AddChild(c)
	b.AddChild(c)

	assert.Empty(t, a.Children)
	require.Len(t, b.Children, 1)
	assert.Same(t, b, c.Parent)

	b.RemoveChild(c)
	assert.Nil(t, c.Parent)
	assert.Empty(t, b.Children)
}

func TestNodeSetMatrix(t *testing.T) {
	n := NewNode("laser")
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DY(0.5))
	n.SetMatrix(m)

	assert.True(t, n.HasMatrix())
	assert.Equal(t, m, n.LocalMatrix())
	assert.Equal(t, m, n.GetWorldMatrix())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, n.Translation())

	// A translation update keeps the rotation that came from the matrix.
	n.SetTranslation(mgl32.Vec3{4, 5, 6})
	assert.False(t, n.HasMatrix())
	want := mgl32.Translate3D(4, 5, 6).Mul4(mgl32.HomogRotate3DY(0.5))
	assert.True(t, n.LocalMatrix().ApproxEqualThreshold(want, 1e-4))
}

func TestNodeCloneSharesPrimitives(t *testing.T) {
	r := gfx.NewMemoryRenderer()
	vb, err := r.CreateRenderBuffer(gfx.ArrayBuffer, gfx.Float32Data([]float32{0, 0, 0, 0}))
	require.NoError(t, err)
	rp, err := r.CreateRenderPrimitive(gfx.NewPrimitive([]gfx.PrimitiveAttribute{
		gfx.NewPrimitiveAttribute("POSITION", vb, 4, gfx.Float, 16, 0),
	}, 1), materials.NewCursorMaterial())
	require.NoError(t, err)

	root := NewNode("controller")
	root.AddRenderPrimitive(rp)
	root.SetMatrix(mgl32.Translate3D(0, 1, 0))
	root.Visible = false
	grip := NewNode("grip")
	root.AddChild(grip)

	parent := NewNode("parent")
	parent.AddChild(root)

	clone := root.Clone()
	assert.NotEqual(t, root.Id, clone.Id)
	assert.Nil(t, clone.Parent)
	assert.False(t, clone.Visible)
	assert.Equal(t, root.LocalMatrix(), clone.LocalMatrix())
	require.Len(t, clone.RenderPrimitives, 1)
	assert.Same(t, rp, clone.RenderPrimitives[0])

	require.Len(t, clone.Children, 1)
	assert.NotSame(t, grip, clone.Children[0])
	assert.Same(t, clone, clone.Children[0].Parent)
	assert.Equal(t, "grip", clone.Children[0].Name)

	// Mutating the clone leaves the original alone.
	clone.Visible = true
	clone.SetMatrix(mgl32.Translate3D(5, 5, 5))
	assert.False(t, root.Visible)
	assert.Equal(t, mgl32.Translate3D(0, 1, 0), root.LocalMatrix())
}

func TestNodeFindAndTraverse(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.AddChild(a)
	a.AddChild(b)

	assert.Same(t, b, root.Find("b"))
	assert.Nil(t, root.Find("missing"))

	var all, visible []string
	root.Traverse(func(n *Node) { all = append(all, n.Name) })
	a.Visible = false
	root.TraverseVisible(func(n *Node) { visible = append(visible, n.Name) })

	assert.Equal(t, []string{"root", "a", "b"}, all)
	assert.Equal(t, []string{"root"}, visible)
}

func TestSceneVisibleNodes(t *testing.T) {
	rp := &gfx.RenderPrimitive{}
	s := NewScene()

	shown := NewNode("shown")
	shown.AddRenderPrimitive(rp)
	hidden := NewNode("hidden")
	hidden.AddRenderPrimitive(rp)
	hidden.Visible = false
	group := NewNode("group")
	inner := NewNode("inner")
	inner.AddRenderPrimitive(rp)
	group.AddChild(inner)

	s.AddNode(shown)
	s.AddNode(hidden)
	s.AddNode(group)

	assert.Equal(t, []*Node{shown, inner}, s.GetVisibleNodes())

	group.Visible = false
	assert.Equal(t, []*Node{shown}, s.GetVisibleNodes())

	s.RemoveNode(shown)
	assert.Empty(t, s.GetVisibleNodes())
}

func TestCameraScreenRayCenter(t *testing.T) {
	cam := NewCamera(1.0, 16.0/9.0, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 1.6, 0}

	ray := cam.ScreenRay(640, 360, 1280, 720)
	ahead := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, -2}, ray)
	assert.True(t, ahead.ApproxEqualThreshold(mgl32.Vec3{0, 1.6, -2}, 1e-4), "ahead %v", ahead)

	assert.True(t, cam.GetForward().ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, eps))
	view := cam.GetViewMatrix()
	origin := mgl32.TransformCoordinate(cam.Position, view)
	assert.True(t, origin.ApproxEqualThreshold(mgl32.Vec3{}, eps))
}

func TestCameraPitchClamp(t *testing.T) {
	cam := NewCamera(1.0, 1, 0.1, 100)
	cam.Rotate(0, 3)
	assert.Equal(t, float32(1.5), cam.Pitch)
	cam.Rotate(0, -5)
	assert.Equal(t, float32(-1.5), cam.Pitch)
}
