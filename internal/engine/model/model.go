package model

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/engine/importer"
	"github.com/Faultbox/learngl/internal/engine/texture"
	"github.com/Faultbox/learngl/internal/logger"
)

// ImportSteps are the post-processing steps applied to every model file.
const ImportSteps = importer.Triangulate | importer.FlipUVs | importer.GenSmoothNormals | importer.CalcTangentSpace

var (
	errNilScene   = errors.New("importer returned no scene")
	errIncomplete = errors.New("scene is incomplete")
	errNoRoot     = errors.New("scene has no root node")
)

// Importer parses a scene file.
type Importer interface {
	ReadFile(path string, steps importer.PostProcess) (*importer.Scene, error)
}

// TextureLoader turns a texture path relative to directory into a GPU texture.
type TextureLoader interface {
	FromFile(path, directory string, gamma bool) uint32
}

// Model is a set of meshes loaded from one scene file.
type Model struct {
	dev      gpu.Device
	imp      Importer
	textures TextureLoader
	log      *zap.Logger
	gamma    bool

	meshes    []*Mesh
	loaded    []Texture
	directory string
}

// Option configures Load.
type Option func(*Model)

// WithGamma loads textures into sRGB internal formats.
func WithGamma(gamma bool) Option {
	return func(m *Model) { m.gamma = gamma }
}

// WithImporter replaces the scene file reader.
func WithImporter(imp Importer) Option {
	return func(m *Model) { m.imp = imp }
}

// WithTextureLoader replaces the texture loader.
func WithTextureLoader(l TextureLoader) Option {
	return func(m *Model) { m.textures = l }
}

// WithLogger sets the logger used for import failures.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) { m.log = log }
}

// Load imports path and uploads its meshes through dev. Import failures are
// logged and leave the model empty.
func Load(dev gpu.Device, path string, opts ...Option) *Model {
	m := &Model{
		dev: dev,
		imp: importer.FileImporter{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Named("model")
	}
	if m.textures == nil {
		m.textures = texture.NewLoader(dev, texture.WithLogger(m.log.Named("texture")))
	}

	m.load(path)
	return m
}

func (m *Model) load(path string) {
	scene, err := m.imp.ReadFile(path, ImportSteps)
	switch {
	case err != nil:
	case scene == nil:
		err = errNilScene
	case scene.Incomplete():
		err = errIncomplete
	case scene.Root == nil:
		err = errNoRoot
	}
	if err != nil {
		m.log.Error("failed to import model", zap.String("path", path), zap.Error(err))
		return
	}

	if i := strings.LastIndex(path, "/"); i >= 0 {
		m.directory = path[:i]
	} else {
		m.directory = path
	}

	m.processNode(scene.Root, scene)

	m.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("meshes", len(m.meshes)),
		zap.Int("textures", len(m.loaded)),
	)
}

// processNode walks the hierarchy depth first: a node's meshes, then its children.
func (m *Model) processNode(node *importer.Node, scene *importer.Scene) {
	for _, idx := range node.Meshes {
		if idx < 0 || idx >= len(scene.Meshes) {
			m.log.Warn("node references missing mesh", zap.String("node", node.Name), zap.Int("mesh", idx))
			continue
		}
		m.meshes = append(m.meshes, m.processMesh(scene.Meshes[idx], scene))
	}
	for _, child := range node.Children {
		if child != nil {
			m.processNode(child, scene)
		}
	}
}

func (m *Model) processMesh(src *importer.Mesh, scene *importer.Scene) *Mesh {
	vertices := make([]Vertex, len(src.Positions))
	for i := range vertices {
		v := Vertex{Position: src.Positions[i]}
		if src.HasNormals() {
			v.Normal = src.Normals[i]
		}
		if src.HasTexCoords(0) {
			v.TexCoord = src.TexCoords[0][i]
		}
		if src.HasTangents() {
			v.Tangent = src.Tangents[i]
		}
		vertices[i] = v
	}

	var indices []uint32
	for _, face := range src.Faces {
		indices = append(indices, face...)
	}

	var mat *importer.Material
	if src.MaterialIndex >= 0 && src.MaterialIndex < len(scene.Materials) {
		mat = scene.Materials[src.MaterialIndex]
	}

	var textures []Texture
	textures = append(textures, m.loadMaterialTextures(mat, importer.TextureDiffuse, TypeDiffuse)...)
	textures = append(textures, m.loadMaterialTextures(mat, importer.TextureSpecular, TypeSpecular)...)
	textures = append(textures, m.loadMaterialTextures(mat, importer.TextureHeight, TypeNormal)...)

	return NewMesh(m.dev, vertices, indices, textures)
}

// loadMaterialTextures resolves every texture of slot t, reusing cached
// textures with the same path.
func (m *Model) loadMaterialTextures(mat *importer.Material, t importer.TextureType, typeName string) []Texture {
	var out []Texture
	for i := 0; i < mat.TextureCount(t); i++ {
		path := mat.Texture(t, i)

		if tex, ok := m.cached(path); ok {
			out = append(out, tex)
			continue
		}

		tex := Texture{
			ID:   m.textures.FromFile(path, m.directory, m.gamma),
			Type: typeName,
			Path: path,
		}
		out = append(out, tex)
		m.loaded = append(m.loaded, tex)
	}
	return out
}

func (m *Model) cached(path string) (Texture, bool) {
	for _, tex := range m.loaded {
		if tex.Path == path {
			return tex, true
		}
	}
	return Texture{}, false
}

// Draw draws every mesh in load order.
func (m *Model) Draw(u Uniforms) {
	for _, mesh := range m.meshes {
		mesh.Draw(u)
	}
}

// Meshes returns the meshes in traversal order.
func (m *Model) Meshes() []*Mesh { return m.meshes }

// LoadedTextures returns the texture cache in load order.
func (m *Model) LoadedTextures() []Texture { return m.loaded }

// Directory returns the directory textures are resolved against.
func (m *Model) Directory() string { return m.directory }

// Delete releases all meshes and cached textures.
func (m *Model) Delete() {
	for _, mesh := range m.meshes {
		mesh.Delete()
	}
	for _, tex := range m.loaded {
		m.dev.DeleteTexture(tex.ID)
	}
	m.meshes = nil
	m.loaded = nil
}
