package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const skyFragment = `#version 330
in vec2 fragTexCoord;
out vec4 finalColor;

uniform float time;
uniform vec2 resolution;
uniform float pitch;

void main() {
    vec2 uv = gl_FragCoord.xy / resolution;
    float h = clamp(uv.y + pitch * 0.6, 0.0, 1.0);
    vec3 horizon = vec3(0.78, 0.86, 0.90);
    vec3 zenith = vec3(0.32, 0.55, 0.85);
    vec3 col = mix(horizon, zenith, smoothstep(0.35, 1.0, h));
    float haze = 0.02 * sin(time * 0.2 + uv.x * 6.2831);
    finalColor = vec4(col + haze, 1.0);
}
`

// SkyRenderer draws a vertical sky gradient that follows the view pitch.
type SkyRenderer struct {
	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32
	pitchLoc      int32
	width         float32
	height        float32
	initialized   bool
}

// NewSkyRenderer creates a new sky renderer.
func NewSkyRenderer(width, height int32) *SkyRenderer {
	return &SkyRenderer{
		width:  float32(width),
		height: float32(height),
	}
}

// Init compiles the shader (must be called after the raylib window is created).
func (s *SkyRenderer) Init() {
	if s.initialized {
		return
	}

	s.shader = rl.LoadShaderFromMemory("", skyFragment)
	s.timeLoc = rl.GetShaderLocation(s.shader, "time")
	s.resolutionLoc = rl.GetShaderLocation(s.shader, "resolution")
	s.pitchLoc = rl.GetShaderLocation(s.shader, "pitch")
	s.setResolution()

	s.initialized = true
}

func (s *SkyRenderer) setResolution() {
	rl.SetShaderValue(s.shader, s.resolutionLoc, []float32{s.width, s.height}, rl.ShaderUniformVec2)
}

// Resize updates the screen size.
func (s *SkyRenderer) Resize(width, height float32) {
	s.width, s.height = width, height
	if s.initialized {
		s.setResolution()
	}
}

// Draw renders the sky as a fullscreen quad.
func (s *SkyRenderer) Draw(time, pitch float32) {
	if !s.initialized {
		s.Init()
	}

	rl.SetShaderValue(s.shader, s.timeLoc, []float32{time}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s.shader, s.pitchLoc, []float32{pitch}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(s.shader)
	rl.DrawRectangle(0, 0, int32(s.width), int32(s.height), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (s *SkyRenderer) Unload() {
	if s.initialized {
		rl.UnloadShader(s.shader)
		s.initialized = false
	}
}
