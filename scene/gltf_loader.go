package scene

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"xr-engine/core"
	"xr-engine/gfx"
	"xr-engine/materials"
	"xr-engine/textures"
)

var ErrNoScene = errors.New("gltf document has no nodes")

// Loader resolves a URL to a ready-to-attach node.
type Loader interface {
	LoadFromURL(ctx context.Context, url string) (*Node, error)
}

// BuildFunc turns a fetched asset into nodes. It uploads through the
// renderer, so it must run on the goroutine that owns the renderer.
type BuildFunc func() (*Node, error)

// Fetcher is a Loader that can do its I/O and decoding apart from renderer
// uploads. Fetch never touches the renderer and may run on any goroutine.
type Fetcher interface {
	Loader
	Fetch(ctx context.Context, url string) (BuildFunc, error)
}

// GLTFLoader reads .gltf and .glb files from disk or over HTTP and uploads
// their geometry through a gfx.Renderer.
//
// Documents fetched over HTTP must be self-contained (GLB or data URIs);
// relative buffer and image URIs are only resolved for local files.
type GLTFLoader struct {
	Renderer gfx.Renderer
	Client   *http.Client
	Textures *textures.Cache
	Logger   core.Logger
}

func NewGLTFLoader(r gfx.Renderer, logger core.Logger) *GLTFLoader {
	if logger == nil {
		logger = core.NewNopLogger()
	}
	return &GLTFLoader{
		Renderer: r,
		Client:   http.DefaultClient,
		Textures: textures.NewCache(),
		Logger:   logger,
	}
}

// LoadFromURL opens the document and returns its scene as one node. A
// document with several root nodes is wrapped in a parent named after url.
func (l *GLTFLoader) LoadFromURL(ctx context.Context, url string) (*Node, error) {
	build, err := l.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return build()
}

// Fetch opens and decodes the document and its images. The returned
// BuildFunc creates the nodes and uploads the geometry.
func (l *GLTFLoader) Fetch(ctx context.Context, url string) (BuildFunc, error) {
	var (
		doc *gltf.Document
		dir string
		err error
	)
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		doc, err = l.fetchHTTP(ctx, url)
	} else {
		path := strings.TrimPrefix(url, "file://")
		dir = filepath.Dir(path)
		doc, err = gltf.Open(path)
		if err != nil {
			err = fmt.Errorf("gltf open %q: %w", path, err)
		}
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	texCache := l.loadTextures(doc, dir)

	return func() (*Node, error) {
		roots, err := l.build(doc, texCache)
		if err != nil {
			return nil, fmt.Errorf("gltf %q: %w", url, err)
		}
		if len(roots) == 1 {
			return roots[0], nil
		}
		wrapper := NewNode(filepath.Base(url))
		for _, r := range roots {
			wrapper.AddChild(r)
		}
		return wrapper, nil
	}, nil
}

func (l *GLTFLoader) fetchHTTP(ctx context.Context, url string) (*gltf.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("gltf request %q: %w", url, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gltf fetch %q: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gltf fetch %q: %s", url, resp.Status)
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(resp.Body).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf decode %q: %w", url, err)
	}
	return doc, nil
}

// build converts the document into scene nodes and returns the roots of
// the default scene, or every parentless node when there is none.
func (l *GLTFLoader) build(doc *gltf.Document, texCache []*textures.Texture) ([]*Node, error) {
	if len(doc.Nodes) == 0 {
		return nil, ErrNoScene
	}

	matCache := loadMaterials(doc, texCache)

	meshPrims := make([][]*gfx.RenderPrimitive, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			var mat materials.Material = materials.NewBasicMaterial(fmt.Sprintf("%s_default", gm.Name))
			if prim.Material != nil && *prim.Material < len(matCache) {
				mat = matCache[*prim.Material]
			}
			rp, err := l.loadPrimitive(doc, prim, mat)
			if err != nil {
				l.Logger.Warnf("gltf: mesh %d prim %d: %v", mi, pi, err)
				continue
			}
			meshPrims[mi] = append(meshPrims[mi], rp)
		}
	}

	nodes := make([]*Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		n := NewNode(name)
		placeNode(n, gn)

		if gn.Mesh != nil && *gn.Mesh < len(meshPrims) {
			for _, rp := range meshPrims[*gn.Mesh] {
				n.AddRenderPrimitive(rp)
			}
		}
		nodes[i] = n
	}

	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		for _, childIdx := range gn.Children {
			if childIdx < len(nodes) && childIdx != i && !hasParent[childIdx] {
				nodes[i].AddChild(nodes[childIdx])
				hasParent[childIdx] = true
			}
		}
	}

	var roots []*Node
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, rootIdx := range doc.Scenes[*doc.Scene].Nodes {
			if rootIdx < len(nodes) {
				roots = append(roots, nodes[rootIdx])
			}
		}
	} else {
		for i, n := range nodes {
			if !hasParent[i] {
				roots = append(roots, n)
			}
		}
	}
	if len(roots) == 0 {
		return nil, ErrNoScene
	}
	return roots, nil
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// placeNode applies the glTF node's matrix, or its TRS when no matrix is
// given. Both are column-major, as is mgl32.
func placeNode(n *Node, gn *gltf.Node) {
	if gn.Matrix != identityMatrix && gn.Matrix != [16]float64{} {
		var m mgl32.Mat4
		for i, v := range gn.Matrix {
			m[i] = float32(v)
		}
		n.SetMatrix(m)
		return
	}

	t := gn.TranslationOrDefault()
	n.SetTranslation(mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])})

	sc := gn.ScaleOrDefault()
	n.SetScale(mgl32.Vec3{float32(sc[0]), float32(sc[1]), float32(sc[2])})

	r := gn.RotationOrDefault() // [x, y, z, w]
	n.SetRotation(mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}})
}

func (l *GLTFLoader) loadTextures(doc *gltf.Document, dir string) []*textures.Texture {
	texCache := make([]*textures.Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil || *gt.Source >= len(doc.Images) {
			continue
		}
		img := doc.Images[*gt.Source]
		name := img.Name
		if name == "" {
			name = fmt.Sprintf("gltf_img_%d", *gt.Source)
		}

		var (
			tex *textures.Texture
			err error
		)
		switch {
		case img.BufferView != nil:
			var raw []byte
			raw, err = modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err == nil {
				tex, err = textures.DecodeBytes(name, raw)
			}
		case img.IsEmbeddedResource():
			var raw []byte
			raw, err = img.MarshalData()
			if err == nil {
				tex, err = textures.DecodeBytes(name, raw)
			}
		case img.URI != "" && dir != "":
			tex, err = l.Textures.Load(filepath.Join(dir, img.URI))
		default:
			err = fmt.Errorf("image %q cannot be resolved", img.URI)
		}
		if err != nil {
			l.Logger.Warnf("gltf: texture %d: %v", i, err)
			continue
		}
		texCache[i] = tex
	}
	return texCache
}

func loadMaterials(doc *gltf.Document, texCache []*textures.Texture) []*materials.BasicMaterial {
	matCache := make([]*materials.BasicMaterial, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := materials.NewBasicMaterial(gm.Name)
		mat.DoubleSided = gm.DoubleSided

		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.DiffuseColor = core.Color{
				R: float32(cf[0]), G: float32(cf[1]),
				B: float32(cf[2]), A: float32(cf[3]),
			}
			if pbr.BaseColorTexture != nil {
				idx := pbr.BaseColorTexture.Index
				if idx < len(texCache) && texCache[idx] != nil {
					mat.DiffuseTexture = texCache[idx]
				}
			}
		}
		matCache[i] = mat
	}
	return matCache
}

// loadPrimitive reads one glTF primitive into a Mesh and uploads it.
func (l *GLTFLoader) loadPrimitive(doc *gltf.Document, prim *gltf.Primitive, mat materials.Material) (*gfx.RenderPrimitive, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	mesh := NewMesh("gltf primitive")

	var err error
	mesh.Positions, err = modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if mesh.Normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			l.Logger.Warnf("gltf: normals: %v", err)
			mesh.Normals = nil
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if mesh.UVs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			l.Logger.Warnf("gltf: texcoords: %v", err)
			mesh.UVs = nil
		}
	}

	switch prim.Mode {
	case gltf.PrimitiveLines:
		mesh.Mode = gfx.DrawLines
	case gltf.PrimitivePoints:
		mesh.Mode = gfx.DrawPoints
	}

	if prim.Indices != nil {
		mesh.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	return mesh.Upload(l.Renderer, mat)
}
