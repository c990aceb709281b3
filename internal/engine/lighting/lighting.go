// Package lighting holds Phong light sources and writes them to shader uniforms.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms is the subset of a shader program the lights write to.
type Uniforms interface {
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
}

// Phong holds the three colour terms every light carries.
type Phong struct {
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

func (p Phong) apply(u Uniforms, prefix string) {
	u.SetVec3(prefix+".ambient", p.Ambient)
	u.SetVec3(prefix+".diffuse", p.Diffuse)
	u.SetVec3(prefix+".specular", p.Specular)
}

// DirLight is a light at infinity shining along Direction.
type DirLight struct {
	Direction mgl32.Vec3
	Phong
}

func (l DirLight) apply(u Uniforms, prefix string) {
	u.SetVec3(prefix+".direction", l.Direction)
	l.Phong.apply(u, prefix)
}

// SpotLight is a cone light. Cut-offs are angles in radians.
type SpotLight struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Phong

	InnerCutOff float32
	OuterCutOff float32
}

func (l SpotLight) apply(u Uniforms, prefix string) {
	u.SetVec3(prefix+".position", l.Position)
	u.SetVec3(prefix+".direction", l.Direction)
	l.Phong.apply(u, prefix)
	u.SetFloat(prefix+".innerCutOff", l.InnerCutOff)
	u.SetFloat(prefix+".outerCutOff", l.OuterCutOff)
}

// Material holds the non-texture surface parameters.
type Material struct {
	Shininess float32
}

// Rig is the full set of lights for one frame.
type Rig struct {
	Dir      DirLight
	Points   *PointLightBuffer
	Spot     SpotLight
	Material Material
}

// Apply writes dirLight, uPointLights[i], uSpotLight and material.shininess.
func (r *Rig) Apply(u Uniforms) {
	r.Dir.apply(u, "dirLight")
	if r.Points != nil {
		r.Points.apply(u)
	}
	r.Spot.apply(u, "uSpotLight")
	u.SetFloat("material.shininess", r.Material.Shininess)
}

// Follow points the spotlight from position along direction, like a flashlight.
func (r *Rig) Follow(position, direction mgl32.Vec3) {
	r.Spot.Position = position
	r.Spot.Direction = direction
}

// LampColor is the colour of the point lights and the cubes that mark them.
var LampColor = mgl32.Vec3{0.4, 0.7, 0.1}

// PointLightPositions are where the default rig places its point lights.
var PointLightPositions = []mgl32.Vec3{
	{0.7, 0.2, 2.0},
	{2.3, -3.3, -4.0},
	{-4.0, 2.0, -12.0},
	{0.0, 0.0, -3.0},
}

// DefaultRig returns a white sun, four green-yellow point lights and a green
// flashlight with a 7 to 10 degree falloff.
func DefaultRig() *Rig {
	points := NewPointLightBuffer()
	for _, p := range PointLightPositions {
		points.AddLight(PointLight{
			Position: p,
			Phong: Phong{
				Ambient:  LampColor.Mul(0.1),
				Diffuse:  LampColor,
				Specular: LampColor,
			},
			Constant:  1,
			Linear:    0.07,
			Quadratic: 0.017,
		})
	}

	return &Rig{
		Dir: DirLight{
			Direction: mgl32.Vec3{-0.2, -1, -0.3},
			Phong: Phong{
				Ambient:  mgl32.Vec3{0.5, 0.5, 0.5},
				Diffuse:  mgl32.Vec3{1, 1, 1},
				Specular: mgl32.Vec3{1, 1, 1},
			},
		},
		Points: points,
		Spot: SpotLight{
			Direction: mgl32.Vec3{0, 0, -1},
			Phong: Phong{
				Diffuse:  mgl32.Vec3{0, 1, 0},
				Specular: mgl32.Vec3{0, 1, 0},
			},
			InnerCutOff: mgl32.DegToRad(7),
			OuterCutOff: mgl32.DegToRad(10),
		},
		Material: Material{Shininess: 64},
	}
}
