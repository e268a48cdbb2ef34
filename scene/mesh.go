package scene

import (
	"fmt"

	"xr-engine/gfx"
	"xr-engine/materials"
	"xr-engine/math"
)

// interleaved vertex layout: POSITION(3) NORMAL(3) TEXCOORD_0(2)
const (
	meshVertexFloats = 8
	meshVertexStride = meshVertexFloats * 4
)

// Mesh holds CPU-side vertex/index data.
// GPU upload goes through a gfx.Renderer with Upload.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32 // optional, defaults to +Y
	UVs       [][2]float32 // optional, defaults to (0, 0)
	Indices   []uint32     // optional; unindexed when empty
	Mode      gfx.DrawMode
}

func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Bounds is the local-space AABB of the positions.
func (m *Mesh) Bounds() math.AABB {
	return math.BoundsOf(m.Positions)
}

// Interleave packs the vertices in the POSITION/NORMAL/TEXCOORD_0 layout.
func (m *Mesh) Interleave() []float32 {
	verts := make([]float32, 0, len(m.Positions)*meshVertexFloats)
	for i, p := range m.Positions {
		n := [3]float32{0, 1, 0}
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		var uv [2]float32
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		verts = append(verts, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return verts
}

// Upload creates the mesh's buffers and a render primitive drawn with mat.
func (m *Mesh) Upload(r gfx.Renderer, mat materials.Material) (*gfx.RenderPrimitive, error) {
	if len(m.Positions) == 0 {
		return nil, fmt.Errorf("mesh %q: no positions", m.Name)
	}

	vb, err := r.CreateRenderBuffer(gfx.ArrayBuffer, gfx.Float32Data(m.Interleave()))
	if err != nil {
		return nil, fmt.Errorf("mesh %q: vertex buffer: %w", m.Name, err)
	}
	attribs := []gfx.PrimitiveAttribute{
		gfx.NewPrimitiveAttribute("POSITION", vb, 3, gfx.Float, meshVertexStride, 0),
		gfx.NewPrimitiveAttribute("NORMAL", vb, 3, gfx.Float, meshVertexStride, 12),
		gfx.NewPrimitiveAttribute("TEXCOORD_0", vb, 2, gfx.Float, meshVertexStride, 24),
	}

	p := gfx.NewPrimitive(attribs, len(m.Positions))
	p.Mode = m.Mode
	bounds := m.Bounds()
	p.Bounds = &bounds

	if len(m.Indices) > 0 {
		ib, err := r.CreateRenderBuffer(gfx.ElementArrayBuffer, gfx.Uint32Data(m.Indices))
		if err != nil {
			return nil, fmt.Errorf("mesh %q: index buffer: %w", m.Name, err)
		}
		p.SetIndexBuffer(ib, gfx.UnsignedInt)
		p.ElementCount = len(m.Indices)
	}

	return r.CreateRenderPrimitive(p, mat)
}

// NewMeshNode uploads mesh and returns a node that draws it.
func NewMeshNode(r gfx.Renderer, mesh *Mesh, mat materials.Material) (*Node, error) {
	rp, err := mesh.Upload(r, mat)
	if err != nil {
		return nil, err
	}
	n := NewNode(mesh.Name)
	n.AddRenderPrimitive(rp)
	return n, nil
}
