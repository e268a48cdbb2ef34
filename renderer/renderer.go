package renderer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/core"
	"xr-engine/gfx"
	"xr-engine/scene"
)

var ErrNoCamera = errors.New("no scene or camera")

// Backend is the drawing half of a GPU renderer. opengl.Renderer
// implements it.
type Backend interface {
	SetViewport(width, height int)
	BeginFrame(sky core.Color)
	Draw(rp *gfx.RenderPrimitive, proj, view, model mgl32.Mat4) error
}

// DrawItem is one primitive queued for the current frame.
type DrawItem struct {
	Node      *scene.Node
	Primitive *gfx.RenderPrimitive
	Model     mgl32.Mat4
	Blended   bool
	depth     float32
}

// Stats describes the last rendered frame.
type Stats struct {
	Objects    int
	Primitives int
	Blended    int
	Culled     int
}

// RenderEngine is the high-level renderer that drives a Backend over the
// visible nodes of a scene.
type RenderEngine struct {
	backend Backend
	Scene   *scene.Scene
	log     core.Logger

	// FrustumCulling skips primitives whose bounds are outside the view.
	FrustumCulling bool

	last Stats
}

func NewRenderEngine(backend Backend, log core.Logger) *RenderEngine {
	if log == nil {
		log = core.NewNopLogger()
	}
	return &RenderEngine{backend: backend, log: log, FrustumCulling: true}
}

func (re *RenderEngine) SetScene(s *scene.Scene) {
	re.Scene = s
}

// Resize updates the viewport and camera aspect ratio.
func (re *RenderEngine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	re.backend.SetViewport(width, height)
	if re.Scene != nil && re.Scene.Camera != nil {
		re.Scene.Camera.UpdateAspectRatio(float32(width), float32(height))
	}
}

// Render clears the frame and draws every visible primitive: opaque ones
// first in scene order, then blended ones back to front.
func (re *RenderEngine) Render() error {
	if re.Scene == nil || re.Scene.Camera == nil {
		return ErrNoCamera
	}
	cam := re.Scene.Camera
	proj := cam.GetProjectionMatrix()
	view := cam.GetViewMatrix()

	re.backend.BeginFrame(re.Scene.SkyColor)

	var frustum *scene.Frustum
	if re.FrustumCulling {
		f := scene.FrustumFromVP(proj.Mul4(view))
		frustum = &f
	}
	items, culled := BuildDrawList(re.Scene, view, frustum)
	stats := Stats{Culled: culled}
	seen := make(map[*scene.Node]bool)
	for _, item := range items {
		if err := re.backend.Draw(item.Primitive, proj, view, item.Model); err != nil {
			return fmt.Errorf("draw %q: %w", item.Node.Name, err)
		}
		if !seen[item.Node] {
			seen[item.Node] = true
			stats.Objects++
		}
		stats.Primitives++
		if item.Blended {
			stats.Blended++
		}
	}
	re.last = stats
	return nil
}

func (re *RenderEngine) DrawStats() Stats {
	return re.last
}

// BuildDrawList collects the primitives of visible nodes in draw order.
// Blended primitives go last, sorted far to near in view space. With a
// frustum, primitives whose bounds lie outside it are dropped and counted.
func BuildDrawList(s *scene.Scene, view mgl32.Mat4, frustum *scene.Frustum) ([]DrawItem, int) {
	var opaque, blended []DrawItem
	culled := 0
	for _, node := range s.GetVisibleNodes() {
		model := node.GetWorldMatrix()
		for _, rp := range node.RenderPrimitives {
			if rp == nil || rp.Material == nil {
				continue
			}
			if frustum != nil && rp.Primitive != nil && rp.Primitive.Bounds != nil {
				if !frustum.IntersectsAABB(rp.Primitive.Bounds.Transform(model)) {
					culled++
					continue
				}
			}
			item := DrawItem{Node: node, Primitive: rp, Model: model}
			if rp.Material.RenderState().Blend {
				item.Blended = true
				item.depth = view.Mul4(model).Col(3).Z()
				blended = append(blended, item)
			} else {
				opaque = append(opaque, item)
			}
		}
	}
	// view space looks down -Z, so the most negative depth is farthest
	sort.SliceStable(blended, func(i, j int) bool {
		return blended[i].depth < blended[j].depth
	})
	return append(opaque, blended...), culled
}
