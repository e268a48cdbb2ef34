// Package gfx describes GPU geometry independently of the graphics API.
// Backends implement Renderer; geometry producers only build Primitives.
package gfx

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/google/uuid"

	"xr-engine/materials"
	xmath "xr-engine/math"
)

var ErrEmptyBuffer = errors.New("empty buffer data")

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	case ElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	}
	return "UNKNOWN"
}

// ComponentType is the scalar type of an attribute or index.
type ComponentType int

const (
	Float ComponentType = iota
	UnsignedShort
	UnsignedInt
)

func (c ComponentType) Size() int {
	switch c {
	case UnsignedShort:
		return 2
	default:
		return 4
	}
}

// DrawMode controls the primitive topology.
type DrawMode int

const (
	DrawTriangles DrawMode = iota
	DrawLines
	DrawPoints
)

// RenderBuffer is raw vertex or index data owned by a backend. Handle is
// backend specific and must not be touched by callers.
type RenderBuffer struct {
	ID     string
	Target BufferTarget
	Size   int
	Handle any
}

func NewRenderBuffer(target BufferTarget, size int) *RenderBuffer {
	return &RenderBuffer{
		ID:     uuid.NewString(),
		Target: target,
		Size:   size,
	}
}

// PrimitiveAttribute locates one named vertex attribute inside a buffer.
type PrimitiveAttribute struct {
	Name           string
	Buffer         *RenderBuffer
	ComponentCount int
	ComponentType  ComponentType
	Stride         int
	ByteOffset     int
	Normalized     bool
}

func NewPrimitiveAttribute(name string, buffer *RenderBuffer, componentCount int, componentType ComponentType, stride, byteOffset int) PrimitiveAttribute {
	return PrimitiveAttribute{
		Name:           name,
		Buffer:         buffer,
		ComponentCount: componentCount,
		ComponentType:  componentType,
		Stride:         stride,
		ByteOffset:     byteOffset,
	}
}

// Primitive is a drawable set of attributes with an optional index buffer.
// ElementCount is the number of indices, or vertices when unindexed.
type Primitive struct {
	Attributes   []PrimitiveAttribute
	ElementCount int
	Mode         DrawMode

	IndexBuffer *RenderBuffer
	IndexType   ComponentType

	// Bounds is the local-space box around the positions, used for
	// culling. Nil means the primitive is never culled.
	Bounds *xmath.AABB
}

func NewPrimitive(attributes []PrimitiveAttribute, elementCount int) *Primitive {
	return &Primitive{
		Attributes:   attributes,
		ElementCount: elementCount,
		Mode:         DrawTriangles,
	}
}

func (p *Primitive) SetIndexBuffer(buffer *RenderBuffer, indexType ComponentType) {
	p.IndexBuffer = buffer
	p.IndexType = indexType
}

// Attribute returns the attribute with the given name, if any.
func (p *Primitive) Attribute(name string) (PrimitiveAttribute, bool) {
	for _, a := range p.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return PrimitiveAttribute{}, false
}

// RenderPrimitive pairs geometry with the material it is drawn with. Scene
// nodes and their clones share RenderPrimitives.
type RenderPrimitive struct {
	ID        string
	Primitive *Primitive
	Material  materials.Material
	Handle    any
}

func NewRenderPrimitive(p *Primitive, m materials.Material) *RenderPrimitive {
	return &RenderPrimitive{
		ID:        uuid.NewString(),
		Primitive: p,
		Material:  m,
	}
}

// Renderer is the backend surface needed to turn CPU geometry into
// drawable primitives.
type Renderer interface {
	CreateRenderBuffer(target BufferTarget, data []byte) (*RenderBuffer, error)
	CreateRenderPrimitive(p *Primitive, m materials.Material) (*RenderPrimitive, error)
}

// Float32Data encodes v as little-endian bytes for CreateRenderBuffer.
func Float32Data(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

func Uint16Data(v []uint16) []byte {
	out := make([]byte, len(v)*2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(out[i*2:], x)
	}
	return out
}

func Uint32Data(v []uint32) []byte {
	out := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[i*4:], x)
	}
	return out
}
