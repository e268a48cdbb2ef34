package scene

import (
	stdmath "math"

	"xr-engine/gfx"
)

// CreateCube generates an axis-aligned cube centred on the origin with
// per-face normals.
func CreateCube(size float32) *Mesh {
	s := size / 2
	m := NewMesh("Cube")

	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{s, -s, -s}, {-s, -s, -s}, {-s, s, -s}, {s, s, -s}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-s, s, s}, {s, s, s}, {s, s, -s}, {-s, s, -s}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-s, -s, -s}, {s, -s, -s}, {s, -s, s}, {-s, -s, s}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{s, -s, s}, {s, -s, -s}, {s, s, -s}, {s, s, s}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-s, -s, -s}, {-s, -s, s}, {-s, s, s}, {-s, s, -s}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for _, f := range faces {
		base := uint32(len(m.Positions))
		for i, c := range f.corners {
			m.Positions = append(m.Positions, c)
			m.Normals = append(m.Normals, f.normal)
			m.UVs = append(m.UVs, uvs[i])
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return m
}

// CreateCylinder generates a capped cylinder along the Z axis, from z = 0
// to z = -length. The demo uses it as a stand-in controller body.
func CreateCylinder(radius, length float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := NewMesh("Cylinder")

	ring := func(i int) (float32, float32) {
		theta := float64(i) * 2.0 * stdmath.Pi / float64(segments)
		return float32(stdmath.Cos(theta)), float32(stdmath.Sin(theta))
	}

	// side
	for i := 0; i <= segments; i++ {
		c, s := ring(i)
		n := [3]float32{c, s, 0}
		u := float32(i) / float32(segments)
		m.Positions = append(m.Positions, [3]float32{c * radius, s * radius, 0}, [3]float32{c * radius, s * radius, -length})
		m.Normals = append(m.Normals, n, n)
		m.UVs = append(m.UVs, [2]float32{u, 0}, [2]float32{u, 1})
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		m.Indices = append(m.Indices, base, base+1, base+2, base+1, base+3, base+2)
	}

	// caps
	addCap := func(z float32, normal [3]float32, flip bool) {
		center := uint32(len(m.Positions))
		m.Positions = append(m.Positions, [3]float32{0, 0, z})
		m.Normals = append(m.Normals, normal)
		m.UVs = append(m.UVs, [2]float32{0.5, 0.5})
		for i := 0; i < segments; i++ {
			c, s := ring(i)
			m.Positions = append(m.Positions, [3]float32{c * radius, s * radius, z})
			m.Normals = append(m.Normals, normal)
			m.UVs = append(m.UVs, [2]float32{c*0.5 + 0.5, s*0.5 + 0.5})
		}
		for i := 0; i < segments; i++ {
			a := center + 1 + uint32(i)
			b := center + 1 + uint32((i+1)%segments)
			if flip {
				a, b = b, a
			}
			m.Indices = append(m.Indices, center, a, b)
		}
	}
	addCap(0, [3]float32{0, 0, 1}, false)
	addCap(-length, [3]float32{0, 0, -1}, true)

	return m
}

// CreateGrid builds a flat grid on the XZ plane drawn as lines.
//
//	size      total world-space extent (grid goes from -size/2 to +size/2)
//	divisions number of cells along each axis
func CreateGrid(size float32, divisions int) *Mesh {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2.0
	step := size / float32(divisions)

	m := NewMesh("Grid")
	m.Mode = gfx.DrawLines

	addLine := func(a, b [3]float32) {
		base := uint32(len(m.Positions))
		m.Positions = append(m.Positions, a, b)
		m.Normals = append(m.Normals, [3]float32{0, 1, 0}, [3]float32{0, 1, 0})
		m.Indices = append(m.Indices, base, base+1)
	}

	for i := 0; i <= divisions; i++ {
		d := -half + float32(i)*step
		addLine([3]float32{d, 0, -half}, [3]float32{d, 0, half})
		addLine([3]float32{-half, 0, d}, [3]float32{half, 0, d})
	}
	return m
}
