package materials

import (
	"fmt"

	"xr-engine/textures"
)

const (
	LaserFadeEnd   = 0.535
	LaserFadePoint = 0.5335

	LaserTextureWidth = 48
)

var LaserDefaultColor = [4]float32{1.0, 1.0, 1.0, 0.25}

// laserTextureData is a 48x1 RGBA ramp (not premultiplied) describing the
// beam cross section: feathered edges around a bright core.
var laserTextureData = [LaserTextureWidth * 4]byte{
	0xff, 0xff, 0xff, 0x01, 0xff, 0xff, 0xff, 0x02, 0xbf, 0xbf, 0xbf, 0x04, 0xcc, 0xcc, 0xcc, 0x05,
	0xdb, 0xdb, 0xdb, 0x07, 0xcc, 0xcc, 0xcc, 0x0a, 0xd8, 0xd8, 0xd8, 0x0d, 0xd2, 0xd2, 0xd2, 0x11,
	0xce, 0xce, 0xce, 0x15, 0xce, 0xce, 0xce, 0x1a, 0xce, 0xce, 0xce, 0x1f, 0xcd, 0xcd, 0xcd, 0x24,
	0xc8, 0xc8, 0xc8, 0x2a, 0xc9, 0xc9, 0xc9, 0x2f, 0xc9, 0xc9, 0xc9, 0x34, 0xc9, 0xc9, 0xc9, 0x39,
	0xc9, 0xc9, 0xc9, 0x3d, 0xc8, 0xc8, 0xc8, 0x41, 0xcb, 0xcb, 0xcb, 0x44, 0xee, 0xee, 0xee, 0x87,
	0xfa, 0xfa, 0xfa, 0xc8, 0xf9, 0xf9, 0xf9, 0xc9, 0xf9, 0xf9, 0xf9, 0xc9, 0xfa, 0xfa, 0xfa, 0xc9,
	0xfa, 0xfa, 0xfa, 0xc9, 0xf9, 0xf9, 0xf9, 0xc9, 0xf9, 0xf9, 0xf9, 0xc9, 0xfa, 0xfa, 0xfa, 0xc8,
	0xee, 0xee, 0xee, 0x87, 0xcb, 0xcb, 0xcb, 0x44, 0xc8, 0xc8, 0xc8, 0x41, 0xc9, 0xc9, 0xc9, 0x3d,
	0xc9, 0xc9, 0xc9, 0x39, 0xc9, 0xc9, 0xc9, 0x34, 0xc9, 0xc9, 0xc9, 0x2f, 0xc8, 0xc8, 0xc8, 0x2a,
	0xcd, 0xcd, 0xcd, 0x24, 0xce, 0xce, 0xce, 0x1f, 0xce, 0xce, 0xce, 0x1a, 0xce, 0xce, 0xce, 0x15,
	0xd2, 0xd2, 0xd2, 0x11, 0xd8, 0xd8, 0xd8, 0x0d, 0xcc, 0xcc, 0xcc, 0x0a, 0xdb, 0xdb, 0xdb, 0x07,
	0xcc, 0xcc, 0xcc, 0x05, 0xbf, 0xbf, 0xbf, 0x04, 0xff, 0xff, 0xff, 0x02, 0xff, 0xff, 0xff, 0x01,
}

// LaserTexture returns a fresh texture over a copy of the beam ramp.
func LaserTexture() *textures.Texture {
	pixels := make([]byte, len(laserTextureData))
	copy(pixels, laserTextureData[:])
	tex, err := textures.NewDataTexture("laser", pixels, LaserTextureWidth, 1)
	if err != nil {
		panic(err) // table size is fixed at compile time
	}
	return tex
}

// LaserMaterial draws the pointer beam additively. Color tints the ramp
// texture; its alpha scales the whole beam.
type LaserMaterial struct {
	Color   [4]float32
	Texture *textures.Texture
}

func NewLaserMaterial() *LaserMaterial {
	return &LaserMaterial{
		Color:   LaserDefaultColor,
		Texture: LaserTexture(),
	}
}

func (m *LaserMaterial) MaterialName() string { return "INPUT_LASER" }

func (m *LaserMaterial) VertexSource() string { return laserVertexSource }

func (m *LaserMaterial) FragmentSource() string { return laserFragmentSource }

func (m *LaserMaterial) RenderState() State {
	s := DefaultState()
	s.CullFace = false
	s.Blend = true
	s.BlendFuncSrc = BlendOne
	s.BlendFuncDst = BlendOne
	return s
}

func (m *LaserMaterial) Uniforms() []Uniform {
	return []Uniform{{Name: "laserColor", Value: m.Color[:]}}
}

func (m *LaserMaterial) Samplers() []Sampler {
	return []Sampler{{Name: "diffuse", Texture: m.Texture}}
}

const laserVertexSource = `
#version 410 core
in vec3 POSITION;
in vec2 TEXCOORD_0;

uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;

out vec2 vTexCoord;

void main() {
    vTexCoord = TEXCOORD_0;
    gl_Position = proj * view * model * vec4(POSITION, 1.0);
}
`

var laserFragmentSource = fmt.Sprintf(`
#version 410 core
uniform vec4 laserColor;
uniform sampler2D diffuse;

in vec2 vTexCoord;

out vec4 outColor;

const float fade_point = %g;
const float fade_end = %g;

void main() {
    vec2 uv = vTexCoord;
    float front_fade_factor = 1.0 - clamp(1.0 - (uv.y - fade_point) / (1.0 - fade_point), 0.0, 1.0);
    float back_fade_factor = clamp((uv.y - fade_point) / (fade_end - fade_point), 0.0, 1.0);
    vec4 color = laserColor * texture(diffuse, vTexCoord);
    float opacity = color.a * front_fade_factor * back_fade_factor;
    outColor = vec4(color.rgb * opacity, opacity);
}
`, LaserFadePoint, LaserFadeEnd)
