package scene

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/core"
	"xr-engine/gfx"
	"xr-engine/materials"
	"xr-engine/textures"
)

// objFace is an already-triangulated face (three vertex references).
type objFace struct {
	vIdx, vtIdx, vnIdx [3]int // 0-based position / UV / normal indices (-1 = absent)
}

// OBJObject is one object or group of a Wavefront file.
type OBJObject struct {
	Mesh     *Mesh
	Material string
}

// OBJFile is a parsed Wavefront file with the materials of its mtllibs.
type OBJFile struct {
	Objects   []OBJObject
	Materials map[string]*materials.BasicMaterial
}

// OBJLoader reads local Wavefront .obj files and uploads their geometry
// through a gfx.Renderer. It implements Loader.
type OBJLoader struct {
	Renderer gfx.Renderer
	Textures *textures.Cache
	Logger   core.Logger
}

func NewOBJLoader(r gfx.Renderer, logger core.Logger) *OBJLoader {
	if logger == nil {
		logger = core.NewNopLogger()
	}
	return &OBJLoader{Renderer: r, Textures: textures.NewCache(), Logger: logger}
}

// LoadFromURL loads a .obj file path and returns one node per object under
// a root named after the file.
func (l *OBJLoader) LoadFromURL(ctx context.Context, url string) (*Node, error) {
	build, err := l.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return build()
}

// Fetch reads and parses the file and its materials. The returned
// BuildFunc uploads the objects.
func (l *OBJLoader) Fetch(ctx context.Context, url string) (BuildFunc, error) {
	path := strings.TrimPrefix(url, "file://")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	obj, err := ParseOBJ(f, filepath.Dir(path), l.Textures)
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return func() (*Node, error) {
		root := NewNode(filepath.Base(path))
		for _, o := range obj.Objects {
			mat, ok := obj.Materials[o.Material]
			if !ok {
				mat = materials.NewBasicMaterial(o.Material)
			}
			n, err := NewMeshNode(l.Renderer, o.Mesh, mat)
			if err != nil {
				return nil, err
			}
			root.AddChild(n)
		}
		l.Logger.Debugf("obj: loaded %s (%d objects)", path, len(obj.Objects))
		return root, nil
	}, nil
}

// ParseOBJ parses Wavefront data. mtllib and map_Kd paths are resolved
// against dir; texs may be nil to skip diffuse maps.
func ParseOBJ(r io.Reader, dir string, texs *textures.Cache) (*OBJFile, error) {
	var positions, normals [][3]float32
	var uvs [][2]float32

	out := &OBJFile{Materials: map[string]*materials.BasicMaterial{}}

	type objObject struct {
		name    string
		matName string
		faces   []objFace
	}
	var objects []objObject
	cur := &objObject{name: "default"}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v", "vn":
			if len(fields) < 4 {
				continue
			}
			v := [3]float32{parseFloat(fields[1]), parseFloat(fields[2]), parseFloat(fields[3])}
			if fields[0] == "v" {
				positions = append(positions, v)
			} else {
				normals = append(normals, v)
			}

		case "vt":
			if len(fields) < 3 {
				continue
			}
			uvs = append(uvs, [2]float32{parseFloat(fields[1]), parseFloat(fields[2])})

		case "o", "g":
			// Push the current object if it has faces, then start a new one
			if len(cur.faces) > 0 {
				objects = append(objects, *cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = &objObject{name: name, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				cur.matName = fields[1]
			}

		case "mtllib":
			if len(fields) > 1 && dir != "" {
				loaded, err := loadMTL(filepath.Join(dir, fields[1]), dir, texs)
				if err != nil {
					return nil, err
				}
				for k, v := range loaded {
					out.Materials[k] = v
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			var fverts []objVertexRef
			for _, tok := range fields[1:] {
				fverts = append(fverts, parseFaceVertex(tok))
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(fverts); i++ {
				f0, f1, f2 := fverts[0], fverts[i], fverts[i+1]
				cur.faces = append(cur.faces, objFace{
					vIdx:  [3]int{f0.v, f1.v, f2.v},
					vtIdx: [3]int{f0.vt, f1.vt, f2.vt},
					vnIdx: [3]int{f0.vn, f1.vn, f2.vn},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	if len(cur.faces) > 0 {
		objects = append(objects, *cur)
	}
	if len(objects) == 0 {
		return nil, ErrNoScene
	}

	for _, obj := range objects {
		out.Objects = append(out.Objects, OBJObject{
			Mesh:     buildMeshFromOBJ(obj.name, obj.faces, positions, normals, uvs),
			Material: obj.matName,
		})
	}
	return out, nil
}

func parseFloat(s string) float32 {
	f, _ := strconv.ParseFloat(s, 32)
	return float32(f)
}

type objVertexRef struct{ v, vt, vn int }

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// Returns 0-based indices (-1 if absent). OBJ is 1-based.
func parseFaceVertex(tok string) objVertexRef {
	parseIdx := func(s string) int {
		if s == "" {
			return -1
		}
		n, _ := strconv.Atoi(s)
		if n > 0 {
			return n - 1
		}
		return -1
	}
	parts := strings.Split(tok, "/")
	res := objVertexRef{v: -1, vt: -1, vn: -1}
	res.v = parseIdx(parts[0])
	if len(parts) > 1 {
		res.vt = parseIdx(parts[1])
	}
	if len(parts) > 2 {
		res.vn = parseIdx(parts[2])
	}
	return res
}

// buildMeshFromOBJ converts parsed face data into a deduplicated Mesh.
func buildMeshFromOBJ(name string, faces []objFace, positions, normals [][3]float32, uvs [][2]float32) *Mesh {
	vertMap := map[objVertexRef]uint32{}
	m := NewMesh(name)

	for _, face := range faces {
		for c := 0; c < 3; c++ {
			k := objVertexRef{face.vIdx[c], face.vtIdx[c], face.vnIdx[c]}
			if idx, ok := vertMap[k]; ok {
				m.Indices = append(m.Indices, idx)
				continue
			}
			var p, n [3]float32
			var uv [2]float32
			n = [3]float32{0, 1, 0}
			if k.v >= 0 && k.v < len(positions) {
				p = positions[k.v]
			}
			if k.vn >= 0 && k.vn < len(normals) {
				n = normals[k.vn]
			}
			if k.vt >= 0 && k.vt < len(uvs) {
				uv = uvs[k.vt]
			}
			idx := uint32(len(m.Positions))
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, n)
			m.UVs = append(m.UVs, uv)
			vertMap[k] = idx
			m.Indices = append(m.Indices, idx)
		}
	}

	if len(normals) == 0 {
		generateNormals(m)
	}
	return m
}

// generateNormals computes area-weighted vertex normals.
func generateNormals(m *Mesh) {
	accum := make([]mgl32.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0 := mgl32.Vec3(m.Positions[i0])
		v1 := mgl32.Vec3(m.Positions[i1])
		v2 := mgl32.Vec3(m.Positions[i2])
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i, n := range accum {
		if n.Len() > 0 {
			m.Normals[i] = n.Normalize()
		}
	}
}

// ── MTL loader ───────────────────────────────────────────────────────────────

func loadMTL(path, dir string, texs *textures.Cache) (map[string]*materials.BasicMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtl %q: %w", path, err)
	}
	defer f.Close()

	mats := map[string]*materials.BasicMaterial{}
	var cur *materials.BasicMaterial

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				cur = materials.NewBasicMaterial(fields[1])
				mats[fields[1]] = cur
			}
		case "Kd":
			if cur != nil && len(fields) >= 4 {
				cur.DiffuseColor.R = parseFloat(fields[1])
				cur.DiffuseColor.G = parseFloat(fields[2])
				cur.DiffuseColor.B = parseFloat(fields[3])
			}
		case "d":
			if cur != nil && len(fields) >= 2 {
				cur.DiffuseColor.A = parseFloat(fields[1])
			}
		case "map_Kd":
			if cur != nil && texs != nil && len(fields) >= 2 {
				tex, err := texs.Load(filepath.Join(dir, fields[len(fields)-1]))
				if err == nil {
					cur.DiffuseTexture = tex
				}
			}
		}
	}
	return mats, scanner.Err()
}
