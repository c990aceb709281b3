package lighting

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the size of the uPointLights array in the lighting shader.
const MaxPointLights = 4

// PointLight is an attenuated omnidirectional light.
type PointLight struct {
	Position mgl32.Vec3
	Phong

	Constant  float32
	Linear    float32
	Quadratic float32
}

func (l PointLight) apply(u Uniforms, prefix string) {
	u.SetVec3(prefix+".position", l.Position)
	l.Phong.apply(u, prefix)
	u.SetFloat(prefix+".constant", l.Constant)
	u.SetFloat(prefix+".linear", l.Linear)
	u.SetFloat(prefix+".quadratic", l.Quadratic)
}

// PointLightBuffer holds up to MaxPointLights lights.
type PointLightBuffer struct {
	Lights []PointLight
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Count returns the number of lights held.
func (b *PointLightBuffer) Count() int { return len(b.Lights) }

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if len(b.Lights) >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	count := len(lights)
	if count > MaxPointLights {
		count = MaxPointLights
	}
	b.Lights = append(b.Lights, lights[:count]...)
}

// Positions returns the light positions in buffer order.
func (b *PointLightBuffer) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(b.Lights))
	for i, l := range b.Lights {
		out[i] = l.Position
	}
	return out
}

// apply writes uPointLights[i] for every held light.
func (b *PointLightBuffer) apply(u Uniforms) {
	for i, l := range b.Lights {
		l.apply(u, fmt.Sprintf("uPointLights[%d]", i))
	}
}
