package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/learngl/internal/app"
	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/geometry"
	"github.com/Faultbox/learngl/internal/engine/gpu/opengl"
	"github.com/Faultbox/learngl/internal/engine/lighting"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/engine/shader/glsl"
	"github.com/Faultbox/learngl/internal/engine/texture"
)

// Texture units of the material samplers.
const (
	diffuseUnit  = 0
	specularUnit = 1
)

type scene struct {
	dev *opengl.Device

	lit  *shader.Program
	lamp *shader.Program

	vbo     uint32
	cubeVAO uint32
	lampVAO uint32

	diffuse  uint32
	specular uint32

	rig *lighting.Rig
}

func newScene(dev *opengl.Device, cfg *config.Config) (*scene, error) {
	s := &scene{dev: dev, rig: lighting.DefaultRig()}

	var err error
	if s.lit, err = shader.Load(glsl.Lighting, cfg.Shaders.Dir); err != nil {
		return nil, fmt.Errorf("lighting shader: %w", err)
	}
	if s.lamp, err = shader.Load(glsl.LightCube, cfg.Shaders.Dir); err != nil {
		s.lit.Delete()
		return nil, fmt.Errorf("lamp shader: %w", err)
	}

	// Both VAOs read the same interleaved buffer; the lamp ignores normals and UVs.
	s.vbo = dev.NewBuffer(gl.ARRAY_BUFFER, geometry.FloatBytes(geometry.CubeVertices))
	s.cubeVAO = dev.NewVertexArray(s.vbo, 0, geometry.CubeLayout())
	s.lampVAO = dev.NewVertexArray(s.vbo, 0, geometry.LampLayout())

	textures := texture.NewLoader(dev, texture.WithDecoder(texture.FileDecoder{MaxSize: cfg.Assets.MaxTextureSize}))
	s.diffuse = textures.FromPath(cfg.TexturePath(cfg.Assets.DiffuseTexture), cfg.Assets.Gamma)
	s.specular = textures.FromPath(cfg.TexturePath(cfg.Assets.SpecularTexture), cfg.Assets.Gamma)

	s.lit.Use()
	s.lit.SetInt("material.diffuse", diffuseUnit)
	s.lit.SetInt("material.specular", specularUnit)
	return s, nil
}

func (s *scene) Render(f app.Frame) error {
	view := f.Camera.ViewMatrix()
	projection := f.Projection()

	s.rig.Follow(f.Camera.Position, f.Camera.Front)

	s.lit.Use()
	s.rig.Apply(s.lit)
	s.lit.SetMat4("projection", projection)
	s.lit.SetMat4("view", view)

	s.dev.ActiveTexture(diffuseUnit)
	s.dev.BindTexture2D(s.diffuse)
	s.dev.ActiveTexture(specularUnit)
	s.dev.BindTexture2D(s.specular)

	for i := range geometry.CubePositions {
		model := geometry.CubeModelMatrix(i)
		s.lit.SetMat4("model", model)
		s.lit.SetMat4("normalTransform", geometry.NormalMatrix(view, model))
		s.dev.DrawArrays(s.cubeVAO, geometry.CubeVertexCount)
	}
	s.dev.ActiveTexture(0)

	s.lamp.Use()
	s.lamp.SetMat4("projection", projection)
	s.lamp.SetMat4("view", view)
	s.lamp.SetVec3("color", lighting.LampColor)
	for _, p := range s.rig.Points.Positions() {
		s.lamp.SetMat4("model", geometry.LampModelMatrix(p))
		s.dev.DrawArrays(s.lampVAO, geometry.CubeVertexCount)
	}
	return nil
}

// Close is safe to call more than once.
func (s *scene) Close() {
	if s.lit == nil {
		return
	}
	s.lit.Delete()
	s.lamp.Delete()
	s.dev.DeleteVertexArray(s.cubeVAO)
	s.dev.DeleteVertexArray(s.lampVAO)
	s.dev.DeleteBuffer(s.vbo)
	s.dev.DeleteTexture(s.diffuse)
	s.dev.DeleteTexture(s.specular)
	s.lit = nil
}
