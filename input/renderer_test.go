package input

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xr-engine/gfx"
	"xr-engine/materials"
	"xr-engine/scene"
	"xr-engine/xr"
)

const eps = 1e-5

var errBackend = errors.New("backend unavailable")

// failingRenderer refuses every upload.
type failingRenderer struct{}

func (failingRenderer) CreateRenderBuffer(gfx.BufferTarget, []byte) (*gfx.RenderBuffer, error) {
	return nil, errBackend
}

func (failingRenderer) CreateRenderPrimitive(*gfx.Primitive, materials.Material) (*gfx.RenderPrimitive, error) {
	return nil, errBackend
}

func newTestRenderer(t *testing.T) (*InputRenderer, *gfx.MemoryRenderer) {
	t.Helper()
	mem := gfx.NewMemoryRenderer()
	return NewInputRenderer(mem, DefaultConfig()), mem
}

func matPtr(m mgl32.Mat4) *mgl32.Mat4 { return &m }

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, materials.LaserDefaultColor, cfg.LaserColor)
	assert.Equal(t, materials.CursorDefaultColor, cfg.CursorColor)
	assert.Equal(t, float32(2), cfg.CursorDistance)
	assert.Equal(t, CursorSegments, cfg.CursorSegments)
}

func TestConfigColorsReachMaterials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LaserColor = [4]float32{1, 0, 0, 0.5}
	cfg.CursorColor = [4]float32{0, 1, 0, 1}
	ir := NewInputRenderer(gfx.NewMemoryRenderer(), cfg)

	assert.Equal(t, cfg.LaserColor, ir.LaserMaterial().Color)
	assert.Equal(t, cfg.CursorColor, ir.CursorMaterial().Color)
}

func TestLaserMeshBuffers(t *testing.T) {
	ir, mem := newTestRenderer(t)
	require.NoError(t, ir.AddLaserPointer(mgl32.Ident4()))

	tmpl := ir.Pool(Laser).Instances()[0]
	require.Len(t, tmpl.RenderPrimitives, 1)
	rp := tmpl.RenderPrimitives[0]
	assert.Same(t, ir.LaserMaterial(), rp.Material)

	prim := rp.Primitive
	assert.Equal(t, 24, prim.ElementCount)
	assert.Equal(t, gfx.UnsignedShort, prim.IndexType)

	pos, ok := prim.Attribute("POSITION")
	require.True(t, ok)
	assert.Equal(t, 3, pos.ComponentCount)
	assert.Equal(t, 20, pos.Stride)
	assert.Equal(t, 0, pos.ByteOffset)

	uv, ok := prim.Attribute("TEXCOORD_0")
	require.True(t, ok)
	assert.Equal(t, 2, uv.ComponentCount)
	assert.Equal(t, 20, uv.Stride)
	assert.Equal(t, 12, uv.ByteOffset)
	assert.Same(t, pos.Buffer, uv.Buffer)

	verts, indices := LaserGeometry()
	assert.Equal(t, gfx.Float32Data(verts), mem.BufferData(pos.Buffer))
	assert.Equal(t, gfx.Uint16Data(indices), mem.BufferData(prim.IndexBuffer))
}

func TestCursorMeshBuffers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CursorSegments = 8
	mem := gfx.NewMemoryRenderer()
	ir := NewInputRenderer(mem, cfg)
	require.NoError(t, ir.AddCursor(mgl32.Vec3{}))

	rp := ir.Pool(Cursor).Instances()[0].RenderPrimitives[0]
	assert.Same(t, ir.CursorMaterial(), rp.Material)

	pos, ok := rp.Primitive.Attribute("POSITION")
	require.True(t, ok)
	assert.Equal(t, 4, pos.ComponentCount)
	assert.Equal(t, 16, pos.Stride)
	assert.Equal(t, 3*(8-2)+6*8, rp.Primitive.ElementCount)
	assert.Len(t, mem.BufferData(pos.Buffer), 3*8*16)
}

func TestTemplatesBuiltOnce(t *testing.T) {
	ir, mem := newTestRenderer(t)

	for frame := 0; frame < 3; frame++ {
		ir.Reset()
		require.NoError(t, ir.AddLaserPointer(mgl32.Ident4()))
		require.NoError(t, ir.AddLaserPointer(mgl32.Translate3D(1, 0, 0)))
		require.NoError(t, ir.AddCursor(mgl32.Vec3{0, 0, -2}))
	}

	// one vertex and one index buffer per mesh
	assert.Equal(t, 4, mem.BufferCount())
	assert.Len(t, mem.RenderPrimitives(), 2)
	assert.Equal(t, 2, ir.Pool(Laser).Len())
	assert.Equal(t, 1, ir.Pool(Cursor).Len())
	assert.Len(t, ir.Children, 3)
}

func TestControllerWithoutMesh(t *testing.T) {
	ir, _ := newTestRenderer(t)

	ir.AddController(mgl32.Ident4())

	assert.Equal(t, 0, ir.Pool(Controller).Len())
	assert.Equal(t, 0, ir.Pool(Controller).Active())
	assert.Empty(t, ir.Children)
}

func TestControllerMesh(t *testing.T) {
	ir, _ := newTestRenderer(t)
	mesh := scene.NewNode("controller")
	ir.SetControllerMesh(mesh)

	assert.False(t, mesh.Visible)
	assert.Same(t, ir.Node, mesh.Parent)

	grip := mgl32.Translate3D(0.2, 1.0, -0.3)
	ir.AddController(grip)
	ir.AddController(mgl32.Translate3D(-0.2, 1.0, -0.3))

	pool := ir.Pool(Controller)
	assert.Equal(t, 2, pool.Active())
	assert.True(t, mesh.Visible)
	assert.Equal(t, grip, mesh.LocalMatrix())
	assert.Equal(t, "controller", pool.Instances()[1].Name)
}

func TestAddInputSourcesGripOnly(t *testing.T) {
	ir, _ := newTestRenderer(t)
	ir.SetControllerMesh(scene.NewNode("controller"))

	frame := &xr.SimulatedFrame{}
	src := frame.Add(&xr.InputSource{Handedness: xr.HandednessLeft, PointerOrigin: xr.PointerOriginHand})
	src.Grip = matPtr(mgl32.Translate3D(0, 1, 0))

	require.NoError(t, ir.AddInputSources(frame, xr.NewFrameOfReference("stage")))

	assert.Equal(t, 1, ir.Pool(Controller).Active())
	assert.Equal(t, 0, ir.Pool(Laser).Active())
	assert.Equal(t, 0, ir.Pool(Cursor).Active())
}

func TestAddInputSourcesGaze(t *testing.T) {
	ir, _ := newTestRenderer(t)

	frame := &xr.SimulatedFrame{}
	src := frame.Add(&xr.InputSource{PointerOrigin: xr.PointerOriginHead})
	src.Pointer = matPtr(mgl32.Translate3D(0, 1.6, 0))

	require.NoError(t, ir.AddInputSources(frame, xr.NewFrameOfReference("eye-level")))

	assert.Equal(t, 0, ir.Pool(Laser).Len())
	require.Equal(t, 1, ir.Pool(Cursor).Active())

	cursor := ir.Pool(Cursor).Instances()[0]
	assert.True(t, cursor.Visible)
	pos := cursor.Translation()
	assert.InDeltaSlice(t, []float32{0, 1.6, -2}, pos[:], eps)
}

func TestAddInputSourcesHandPointer(t *testing.T) {
	ir, _ := newTestRenderer(t)

	// pointer aimed down +X
	pointer := mgl32.Translate3D(1, 1, 0).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-90)))

	frame := &xr.SimulatedFrame{}
	src := frame.Add(&xr.InputSource{Handedness: xr.HandednessRight, PointerOrigin: xr.PointerOriginHand})
	src.Pointer = matPtr(pointer)

	require.NoError(t, ir.AddInputSources(frame, nil))

	require.Equal(t, 1, ir.Pool(Laser).Active())
	laser := ir.Pool(Laser).Instances()[0]
	assert.Equal(t, pointer, laser.LocalMatrix())

	require.Equal(t, 1, ir.Pool(Cursor).Active())
	cursor := ir.Pool(Cursor).Instances()[0]
	pos := cursor.Translation()
	assert.InDeltaSlice(t, []float32{3, 1, 0}, pos[:], eps)
}

func TestAddInputSourcesCursorDistance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CursorDistance = 5
	ir := NewInputRenderer(gfx.NewMemoryRenderer(), cfg)

	frame := &xr.SimulatedFrame{}
	src := frame.Add(&xr.InputSource{PointerOrigin: xr.PointerOriginScreen})
	src.Pointer = matPtr(mgl32.Ident4())

	require.NoError(t, ir.AddInputSources(frame, nil))
	cursor := ir.Pool(Cursor).Instances()[0]
	pos := cursor.Translation()
	assert.InDeltaSlice(t, []float32{0, 0, -5}, pos[:], eps)
}

func TestAddInputSourcesSkipsMissingPose(t *testing.T) {
	ir, _ := newTestRenderer(t)
	ir.SetControllerMesh(scene.NewNode("controller"))

	frame := &xr.SimulatedFrame{}
	lost := frame.Add(&xr.InputSource{PointerOrigin: xr.PointerOriginHand})
	lost.Grip = matPtr(mgl32.Ident4())
	lost.Pointer = matPtr(mgl32.Ident4())
	lost.Tracked = false
	frame.Add(&xr.InputSource{PointerOrigin: xr.PointerOriginHead})

	require.NoError(t, ir.AddInputSources(frame, nil))

	assert.Equal(t, 0, ir.Pool(Controller).Active())
	assert.Equal(t, 0, ir.Pool(Laser).Len())
	assert.Equal(t, 0, ir.Pool(Cursor).Len())
}

func TestAddInputSourcesMixed(t *testing.T) {
	ir, _ := newTestRenderer(t)
	ir.SetControllerMesh(scene.NewNode("controller"))

	frame := &xr.SimulatedFrame{}
	for _, h := range []xr.Handedness{xr.HandednessLeft, xr.HandednessRight} {
		src := frame.Add(&xr.InputSource{Handedness: h, PointerOrigin: xr.PointerOriginHand})
		src.Grip = matPtr(mgl32.Ident4())
		src.Pointer = matPtr(mgl32.Ident4())
	}
	gaze := frame.Add(&xr.InputSource{PointerOrigin: xr.PointerOriginHead})
	gaze.Pointer = matPtr(mgl32.Ident4())

	require.NoError(t, ir.AddInputSources(frame, nil))
	assert.Equal(t, 2, ir.Pool(Controller).Active())
	assert.Equal(t, 2, ir.Pool(Laser).Active())
	assert.Equal(t, 3, ir.Pool(Cursor).Active())

	// next frame only the gaze remains
	ir.Reset()
	frame.Sources = frame.Sources[2:]
	require.NoError(t, ir.AddInputSources(frame, nil))

	assert.Equal(t, 0, ir.Pool(Controller).Active())
	assert.Equal(t, 0, ir.Pool(Laser).Active())
	assert.Equal(t, 1, ir.Pool(Cursor).Active())
	assert.Equal(t, 3, ir.Pool(Cursor).Len())

	visible := 0
	ir.TraverseVisible(func(n *scene.Node) {
		if n != ir.Node {
			visible++
		}
	})
	assert.Equal(t, 1, visible)
}

func TestBackendErrorPropagates(t *testing.T) {
	ir := NewInputRenderer(failingRenderer{}, DefaultConfig())

	err := ir.AddLaserPointer(mgl32.Ident4())
	assert.ErrorIs(t, err, errBackend)
	assert.False(t, ir.Pool(Laser).HasTemplate())

	err = ir.AddCursor(mgl32.Vec3{})
	assert.ErrorIs(t, err, errBackend)

	frame := &xr.SimulatedFrame{}
	src := frame.Add(&xr.InputSource{PointerOrigin: xr.PointerOriginHead})
	src.Pointer = matPtr(mgl32.Ident4())
	assert.ErrorIs(t, ir.AddInputSources(frame, nil), errBackend)
}

func TestPoolLookup(t *testing.T) {
	ir, _ := newTestRenderer(t)
	assert.Equal(t, Controller, ir.Pool(Controller).Kind())
	assert.Equal(t, Laser, ir.Pool(Laser).Kind())
	assert.Equal(t, Cursor, ir.Pool(Cursor).Kind())
	assert.Nil(t, ir.Pool(VisualKind(9)))
}
