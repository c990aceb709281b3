// Package importer reads 3D scene files into a format-neutral node graph.
//
// Supported formats are Wavefront OBJ (with MTL materials) and glTF 2.0
// (.gltf and .glb). The format is picked from the file extension.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported scene format")

// MaxTexCoords is the number of UV channels a mesh can carry.
const MaxTexCoords = 2

// PostProcess selects processing steps applied after parsing.
type PostProcess uint

// Post-processing steps.
const (
	// Triangulate splits polygons into triangle fans and drops faces with
	// fewer than three corners.
	Triangulate PostProcess = 1 << iota
	// FlipUVs replaces v with 1-v in every UV channel.
	FlipUVs
	// GenSmoothNormals builds per-vertex normals for meshes that lack them.
	GenSmoothNormals
	// CalcTangentSpace builds per-vertex tangents for meshes with UVs and
	// normals that lack them.
	CalcTangentSpace
)

// SceneFlags describe the state of an imported scene.
type SceneFlags uint

// FlagIncomplete marks a scene with no mesh data.
const FlagIncomplete SceneFlags = 1

// TextureType is the semantic slot a material texture fills.
type TextureType int

// Texture slots.
const (
	TextureDiffuse TextureType = iota + 1
	TextureSpecular
	TextureHeight
	TextureNormals
)

func (t TextureType) String() string {
	switch t {
	case TextureDiffuse:
		return "diffuse"
	case TextureSpecular:
		return "specular"
	case TextureHeight:
		return "height"
	case TextureNormals:
		return "normals"
	default:
		return fmt.Sprintf("TextureType(%d)", int(t))
	}
}

// Material holds texture paths per slot, in declaration order.
type Material struct {
	Name     string
	textures map[TextureType][]string
}

// AddTexture appends a texture path to slot t.
func (m *Material) AddTexture(t TextureType, path string) {
	if m.textures == nil {
		m.textures = make(map[TextureType][]string)
	}
	m.textures[t] = append(m.textures[t], path)
}

// TextureCount returns the number of textures in slot t.
func (m *Material) TextureCount(t TextureType) int {
	if m == nil {
		return 0
	}
	return len(m.textures[t])
}

// Texture returns the i-th path in slot t, or "" when out of range.
func (m *Material) Texture(t TextureType, i int) string {
	if m == nil || i < 0 || i >= len(m.textures[t]) {
		return ""
	}
	return m.textures[t][i]
}

// Face is one polygon as indices into the mesh's vertex arrays.
type Face []uint32

// Mesh is a single-material chunk of geometry. Attribute slices are either
// empty or as long as Positions.
type Mesh struct {
	Name          string
	Positions     [][3]float32
	Normals       [][3]float32
	Tangents      [][3]float32
	TexCoords     [MaxTexCoords][][2]float32
	Faces         []Face
	MaterialIndex int
}

// HasNormals reports whether the mesh carries normals.
func (m *Mesh) HasNormals() bool { return len(m.Normals) > 0 }

// HasTangents reports whether the mesh carries tangents.
func (m *Mesh) HasTangents() bool { return len(m.Tangents) > 0 }

// HasTexCoords reports whether UV channel ch is present.
func (m *Mesh) HasTexCoords(ch int) bool {
	return ch >= 0 && ch < MaxTexCoords && len(m.TexCoords[ch]) > 0
}

// Node is one element of the scene hierarchy.
type Node struct {
	Name     string
	Meshes   []int // indices into Scene.Meshes
	Children []*Node
}

// Scene is the result of an import.
type Scene struct {
	Meshes    []*Mesh
	Materials []*Material
	Root      *Node
	Flags     SceneFlags
}

// Incomplete reports whether FlagIncomplete is set.
func (s *Scene) Incomplete() bool {
	return s.Flags&FlagIncomplete != 0
}

// defaultMaterial returns the index of an unnamed material, adding it on first use.
func (s *Scene) defaultMaterial(idx *int) int {
	if *idx < 0 {
		*idx = len(s.Materials)
		s.Materials = append(s.Materials, &Material{Name: "DefaultMaterial"})
	}
	return *idx
}

// FileImporter reads scene files from disk.
type FileImporter struct{}

// ReadFile parses path with the reader for its extension and applies steps.
func (FileImporter) ReadFile(path string, steps PostProcess) (*Scene, error) {
	return ReadFile(path, steps)
}

// ReadFile parses path with the reader for its extension and applies steps.
func ReadFile(path string, steps PostProcess) (*Scene, error) {
	var (
		scene *Scene
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		scene, err = readOBJ(path)
	case ".gltf", ".glb":
		scene, err = readGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	Apply(scene, steps)
	if len(scene.Meshes) == 0 {
		scene.Flags |= FlagIncomplete
	}
	return scene, nil
}
