// Package opengl is the desktop gfx.Renderer, built on OpenGL 4.1 core.
// All methods must run on the goroutine that owns the GL context.
package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/core"
	"xr-engine/gfx"
	"xr-engine/materials"
	"xr-engine/textures"
)

// glPrimitive is the backend handle stored in gfx.RenderPrimitive.Handle.
type glPrimitive struct {
	vao       uint32
	prog      *program
	mode      uint32
	count     int32
	indexed   bool
	indexType uint32
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	log core.Logger

	buffers  map[string]uint32
	programs map[string]*program
	vaos     []uint32
	textures map[*textures.Texture]uint32
}

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer(log core.Logger) (*Renderer, error) {
	if log == nil {
		log = core.NewNopLogger()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Infof("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.DepthFunc(gl.LEQUAL)

	return &Renderer{
		log:      log,
		buffers:  make(map[string]uint32),
		programs: make(map[string]*program),
		textures: make(map[*textures.Texture]uint32),
	}, nil
}

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// BeginFrame clears the framebuffer with the given colour.
func (r *Renderer) BeginFrame(sky core.Color) {
	gl.DepthMask(true)
	gl.ClearColor(sky.R, sky.G, sky.B, sky.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) CreateRenderBuffer(target gfx.BufferTarget, data []byte) (*gfx.RenderBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("create %s: %w", target, gfx.ErrEmptyBuffer)
	}

	var id uint32
	gl.GenBuffers(1, &id)
	// Buffer objects are untyped; upload through ARRAY_BUFFER so index data
	// does not need a bound vertex array.
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	buf := gfx.NewRenderBuffer(target, len(data))
	buf.Handle = id
	r.buffers[buf.ID] = id
	return buf, nil
}

func (r *Renderer) CreateRenderPrimitive(p *gfx.Primitive, m materials.Material) (*gfx.RenderPrimitive, error) {
	if p == nil {
		return nil, fmt.Errorf("create render primitive: nil primitive")
	}
	if m == nil {
		return nil, fmt.Errorf("create render primitive: nil material")
	}
	prog, err := r.program(m)
	if err != nil {
		return nil, err
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	defer gl.BindVertexArray(0)

	for _, a := range p.Attributes {
		id, err := r.bufferID(a.Buffer)
		if err != nil {
			gl.DeleteVertexArrays(1, &vao)
			return nil, fmt.Errorf("attribute %s: %w", a.Name, err)
		}
		loc := prog.attrib(a.Name)
		if loc < 0 {
			r.log.Debugf("opengl: %s has no input %s", m.MaterialName(), a.Name)
			continue
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, id)
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointer(uint32(loc), int32(a.ComponentCount), componentType(a.ComponentType),
			a.Normalized, int32(a.Stride), gl.PtrOffset(a.ByteOffset))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	handle := &glPrimitive{
		vao:   vao,
		prog:  prog,
		mode:  drawMode(p.Mode),
		count: int32(p.ElementCount),
	}
	if p.IndexBuffer != nil {
		id, err := r.bufferID(p.IndexBuffer)
		if err != nil {
			gl.DeleteVertexArrays(1, &vao)
			return nil, fmt.Errorf("index buffer: %w", err)
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, id)
		handle.indexed = true
		handle.indexType = componentType(p.IndexType)
	}
	r.vaos = append(r.vaos, vao)

	rp := gfx.NewRenderPrimitive(p, m)
	rp.Handle = handle
	return rp, nil
}

// Draw issues one draw call for rp with the material's current uniforms,
// samplers and pipeline state.
func (r *Renderer) Draw(rp *gfx.RenderPrimitive, proj, view, model mgl32.Mat4) error {
	h, ok := rp.Handle.(*glPrimitive)
	if !ok {
		return fmt.Errorf("render primitive %s was not created by this renderer", rp.ID)
	}
	m := rp.Material

	gl.UseProgram(h.prog.id)
	// mgl32 matrices are column-major, matching GL.
	gl.UniformMatrix4fv(h.prog.uniform("proj"), 1, false, &proj[0])
	gl.UniformMatrix4fv(h.prog.uniform("view"), 1, false, &view[0])
	gl.UniformMatrix4fv(h.prog.uniform("model"), 1, false, &model[0])

	for _, u := range m.Uniforms() {
		setUniform(h.prog.uniform(u.Name), u.Value)
	}
	for unit, s := range m.Samplers() {
		id, err := r.texture(s.Texture)
		if err != nil {
			return fmt.Errorf("sampler %s: %w", s.Name, err)
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, id)
		gl.Uniform1i(h.prog.uniform(s.Name), int32(unit))
	}

	applyState(m.RenderState())

	gl.BindVertexArray(h.vao)
	if h.indexed {
		gl.DrawElements(h.mode, h.count, h.indexType, nil)
	} else {
		gl.DrawArrays(h.mode, 0, h.count)
	}
	gl.BindVertexArray(0)
	return nil
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for _, vao := range r.vaos {
		gl.DeleteVertexArrays(1, &vao)
	}
	for _, id := range r.buffers {
		gl.DeleteBuffers(1, &id)
	}
	for _, id := range r.textures {
		gl.DeleteTextures(1, &id)
	}
	for _, p := range r.programs {
		gl.DeleteProgram(p.id)
	}
	r.vaos = nil
	r.buffers = make(map[string]uint32)
	r.textures = make(map[*textures.Texture]uint32)
	r.programs = make(map[string]*program)
}

// program compiles the material's shaders once per MaterialName.
func (r *Renderer) program(m materials.Material) (*program, error) {
	name := m.MaterialName()
	if p, ok := r.programs[name]; ok {
		return p, nil
	}
	p, err := newProgram(m.VertexSource(), m.FragmentSource())
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", name, err)
	}
	r.programs[name] = p
	r.log.Debugf("opengl: compiled program for %s", name)
	return p, nil
}

func (r *Renderer) bufferID(buf *gfx.RenderBuffer) (uint32, error) {
	if buf == nil {
		return 0, fmt.Errorf("no buffer")
	}
	id, ok := r.buffers[buf.ID]
	if !ok {
		return 0, fmt.Errorf("buffer %s not owned by this renderer", buf.ID)
	}
	return id, nil
}

func setUniform(loc int32, v []float32) {
	if loc < 0 || len(v) == 0 {
		return
	}
	switch len(v) {
	case 1:
		gl.Uniform1fv(loc, 1, &v[0])
	case 2:
		gl.Uniform2fv(loc, 1, &v[0])
	case 3:
		gl.Uniform3fv(loc, 1, &v[0])
	default:
		gl.Uniform4fv(loc, 1, &v[0])
	}
}

func applyState(s materials.State) {
	if s.CullFace {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	if s.Blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(blendFactor(s.BlendFuncSrc), blendFactor(s.BlendFuncDst))
	} else {
		gl.Disable(gl.BLEND)
	}
	if s.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(s.DepthMask)
}

func blendFactor(f materials.BlendFactor) uint32 {
	switch f {
	case materials.BlendZero:
		return gl.ZERO
	case materials.BlendOne:
		return gl.ONE
	case materials.BlendSrcAlpha:
		return gl.SRC_ALPHA
	default:
		return gl.ONE_MINUS_SRC_ALPHA
	}
}

func componentType(c gfx.ComponentType) uint32 {
	switch c {
	case gfx.UnsignedShort:
		return gl.UNSIGNED_SHORT
	case gfx.UnsignedInt:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}

func drawMode(m gfx.DrawMode) uint32 {
	switch m {
	case gfx.DrawLines:
		return gl.LINES
	case gfx.DrawPoints:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}
