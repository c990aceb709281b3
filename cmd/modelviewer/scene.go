package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learngl/internal/app"
	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/gpu/opengl"
	"github.com/Faultbox/learngl/internal/engine/model"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/engine/shader/glsl"
	"github.com/Faultbox/learngl/internal/engine/texture"
)

var lightDir = mgl32.Vec3{-0.2, -1, -0.3}

type scene struct {
	prog  *shader.Program
	model *model.Model
}

func newScene(dev *opengl.Device, cfg *config.Config) (*scene, error) {
	prog, err := shader.Load(glsl.Model, cfg.Shaders.Dir)
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}

	// An import failure is logged by Load and leaves an empty model that draws nothing.
	textures := texture.NewLoader(dev, texture.WithDecoder(texture.FileDecoder{MaxSize: cfg.Assets.MaxTextureSize}))
	m := model.Load(dev, cfg.Assets.Model,
		model.WithGamma(cfg.Assets.Gamma),
		model.WithTextureLoader(textures),
	)
	return &scene{prog: prog, model: m}, nil
}

func (s *scene) Render(f app.Frame) error {
	s.prog.Use()
	s.prog.SetMat4("projection", f.Projection())
	s.prog.SetMat4("view", f.Camera.ViewMatrix())
	s.prog.SetMat4("model", mgl32.Ident4())
	s.prog.SetVec3("lightDir", lightDir)
	s.model.Draw(s.prog)
	return nil
}

// Close is safe to call more than once.
func (s *scene) Close() {
	if s.prog == nil {
		return
	}
	s.model.Delete()
	s.prog.Delete()
	s.prog = nil
}
