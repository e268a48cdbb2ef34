package materials

import (
	"xr-engine/core"
	"xr-engine/textures"
)

// Material is implemented by every shading program the renderer can draw.
// The GL backend compiles one program per MaterialName and reads uniforms
// and samplers on every draw, so mutations are picked up the next frame.
//
// Vertex sources receive the uniforms proj, view and model and name their
// inputs after the glTF attribute semantics (POSITION, NORMAL, TEXCOORD_0).
type Material interface {
	MaterialName() string
	VertexSource() string
	FragmentSource() string
	RenderState() State
	Uniforms() []Uniform
	Samplers() []Sampler
}

type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// State is the fixed-function pipeline state a material draws with.
type State struct {
	CullFace     bool
	Blend        bool
	BlendFuncSrc BlendFactor
	BlendFuncDst BlendFactor
	DepthTest    bool
	DepthMask    bool
}

// DefaultState is back-face culled, opaque and depth tested.
func DefaultState() State {
	return State{
		CullFace:     true,
		Blend:        false,
		BlendFuncSrc: BlendSrcAlpha,
		BlendFuncDst: BlendOneMinusSrcAlpha,
		DepthTest:    true,
		DepthMask:    true,
	}
}

// Uniform is a float uniform of 1 to 4 components.
type Uniform struct {
	Name  string
	Value []float32
}

type Sampler struct {
	Name    string
	Texture *textures.Texture
}

// BasicMaterial is an unlit-plus-wrap-lighting material used for meshes
// loaded from glTF files.
type BasicMaterial struct {
	Name string

	DiffuseColor   core.Color // multiplied with DiffuseTexture if set
	DiffuseTexture *textures.Texture

	DoubleSided bool
}

func NewBasicMaterial(name string) *BasicMaterial {
	return &BasicMaterial{
		Name:         name,
		DiffuseColor: core.Color{R: 0.8, G: 0.8, B: 0.8, A: 1.0},
	}
}

func (m *BasicMaterial) MaterialName() string { return "BASIC" }

func (m *BasicMaterial) VertexSource() string { return basicVertexSource }

func (m *BasicMaterial) FragmentSource() string { return basicFragmentSource }

func (m *BasicMaterial) RenderState() State {
	s := DefaultState()
	s.CullFace = !m.DoubleSided
	if m.DiffuseColor.A < 1 {
		s.Blend = true
	}
	return s
}

func (m *BasicMaterial) Uniforms() []Uniform {
	hasTex := float32(0)
	if m.DiffuseTexture != nil {
		hasTex = 1
	}
	c := m.DiffuseColor.Array()
	return []Uniform{
		{Name: "baseColor", Value: c[:]},
		{Name: "hasDiffuse", Value: []float32{hasTex}},
	}
}

func (m *BasicMaterial) Samplers() []Sampler {
	if m.DiffuseTexture == nil {
		return nil
	}
	return []Sampler{{Name: "diffuse", Texture: m.DiffuseTexture}}
}

// Clone creates a copy of the material (textures are shared).
func (m *BasicMaterial) Clone(newName string) *BasicMaterial {
	clone := *m
	clone.Name = newName
	return &clone
}

const basicVertexSource = `
#version 410 core
in vec3 POSITION;
in vec3 NORMAL;
in vec2 TEXCOORD_0;

uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vNormal = mat3(model) * NORMAL;
    vTexCoord = TEXCOORD_0;
    gl_Position = proj * view * model * vec4(POSITION, 1.0);
}
`

const basicFragmentSource = `
#version 410 core
uniform vec4 baseColor;
uniform float hasDiffuse;
uniform sampler2D diffuse;

in vec3 vNormal;
in vec2 vTexCoord;

out vec4 outColor;

void main() {
    vec4 color = baseColor;
    if (hasDiffuse > 0.5) {
        color *= texture(diffuse, vTexCoord);
    }
    vec3 lightDir = normalize(vec3(0.5, -1.0, -0.5));
    float diff = max(dot(normalize(vNormal), -lightDir), 0.0);
    outColor = vec4(color.rgb * (0.4 + 0.6 * diff), color.a);
}
`
