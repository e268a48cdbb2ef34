package materials

var CursorDefaultColor = [4]float32{1.0, 1.0, 1.0, 1.0}

// CursorMaterial draws cursors as camera-facing billboards of constant
// screen size. Vertices carry (x, y, luminance, opacity) in POSITION.
type CursorMaterial struct {
	Color [4]float32
}

func NewCursorMaterial() *CursorMaterial {
	return &CursorMaterial{Color: CursorDefaultColor}
}

func (m *CursorMaterial) MaterialName() string { return "INPUT_CURSOR" }

func (m *CursorMaterial) VertexSource() string { return cursorVertexSource }

func (m *CursorMaterial) FragmentSource() string { return cursorFragmentSource }

func (m *CursorMaterial) RenderState() State {
	s := DefaultState()
	s.CullFace = false
	s.Blend = true
	s.BlendFuncSrc = BlendOne
	return s
}

func (m *CursorMaterial) Uniforms() []Uniform {
	return []Uniform{{Name: "cursorColor", Value: m.Color[:]}}
}

func (m *CursorMaterial) Samplers() []Sampler { return nil }

const cursorVertexSource = `
#version 410 core
in vec4 POSITION;

uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;

out float vLuminance;
out float vOpacity;

void main() {
    vLuminance = POSITION.z;
    vOpacity = POSITION.w;

    vec4 screenPos = proj * view * model * vec4(0.0, 0.0, 0.0, 1.0);
    screenPos /= screenPos.w;
    screenPos.xy += POSITION.xy;
    gl_Position = screenPos;
}
`

const cursorFragmentSource = `
#version 410 core
uniform vec4 cursorColor;

in float vLuminance;
in float vOpacity;

out vec4 outColor;

void main() {
    vec3 color = cursorColor.rgb * vLuminance;
    float opacity = cursorColor.a * vOpacity;
    outColor = vec4(color * opacity, opacity);
}
`
