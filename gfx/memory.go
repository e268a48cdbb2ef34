package gfx

import (
	"fmt"

	"xr-engine/materials"
)

// MemoryRenderer keeps buffers in host memory. It backs headless runs and
// tests, and lets callers inspect exactly what was uploaded.
type MemoryRenderer struct {
	buffers    map[string][]byte
	primitives []*RenderPrimitive
}

func NewMemoryRenderer() *MemoryRenderer {
	return &MemoryRenderer{buffers: make(map[string][]byte)}
}

func (r *MemoryRenderer) CreateRenderBuffer(target BufferTarget, data []byte) (*RenderBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("create %s: %w", target, ErrEmptyBuffer)
	}
	buf := NewRenderBuffer(target, len(data))
	stored := make([]byte, len(data))
	copy(stored, data)
	r.buffers[buf.ID] = stored
	buf.Handle = stored
	return buf, nil
}

func (r *MemoryRenderer) CreateRenderPrimitive(p *Primitive, m materials.Material) (*RenderPrimitive, error) {
	if p == nil {
		return nil, fmt.Errorf("create render primitive: nil primitive")
	}
	if m == nil {
		return nil, fmt.Errorf("create render primitive: nil material")
	}
	for _, a := range p.Attributes {
		if a.Buffer == nil {
			return nil, fmt.Errorf("attribute %s: no buffer", a.Name)
		}
		if _, ok := r.buffers[a.Buffer.ID]; !ok {
			return nil, fmt.Errorf("attribute %s: buffer %s not owned by this renderer", a.Name, a.Buffer.ID)
		}
	}
	rp := NewRenderPrimitive(p, m)
	r.primitives = append(r.primitives, rp)
	return rp, nil
}

// BufferData returns the bytes uploaded for buf, or nil.
func (r *MemoryRenderer) BufferData(buf *RenderBuffer) []byte {
	if buf == nil {
		return nil
	}
	return r.buffers[buf.ID]
}

func (r *MemoryRenderer) BufferCount() int { return len(r.buffers) }

func (r *MemoryRenderer) RenderPrimitives() []*RenderPrimitive { return r.primitives }
