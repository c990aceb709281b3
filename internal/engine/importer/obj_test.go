package importer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cubeFaceOBJ = `# two quads sharing an edge
mtllib box.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 2 0 0
v 2 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
o panel
usemtl wood
f 1/1/1 2/2/1 3/3/1 4/4/1
usemtl metal
f -5/1/1 -2/2/1 -1/3/1 -4/4/1
`

const boxMTL = `newmtl wood
Kd 1 1 1
map_Kd wood.png
map_Ks -s 1 1 1 wood_spec.png
newmtl metal
map_Bump metal_height.png
norm metal_normal.png
`

func openerFor(files map[string]string) func(string) (io.ReadCloser, error) {
	return func(name string) (io.ReadCloser, error) {
		s, ok := files[name]
		if !ok {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func TestParseOBJSplitsByMaterial(t *testing.T) {
	s, err := parseOBJ(strings.NewReader(cubeFaceOBJ), openerFor(map[string]string{"box.mtl": boxMTL}))
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}

	if len(s.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(s.Meshes))
	}
	if len(s.Root.Children) != 1 || s.Root.Children[0].Name != "panel" {
		t.Fatalf("expected one child node named panel, got %+v", s.Root.Children)
	}
	if got := s.Root.Children[0].Meshes; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("panel meshes = %v, want [0 1]", got)
	}

	wood := s.Materials[s.Meshes[0].MaterialIndex]
	if wood.Name != "wood" || wood.Texture(TextureDiffuse, 0) != "wood.png" {
		t.Errorf("unexpected first material %+v", wood)
	}
	if wood.Texture(TextureSpecular, 0) != "wood_spec.png" {
		t.Errorf("map_Ks options not skipped: %q", wood.Texture(TextureSpecular, 0))
	}
	metal := s.Materials[s.Meshes[1].MaterialIndex]
	if metal.Texture(TextureHeight, 0) != "metal_height.png" || metal.Texture(TextureNormals, 0) != "metal_normal.png" {
		t.Errorf("unexpected second material %+v", metal)
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	s, err := parseOBJ(strings.NewReader(cubeFaceOBJ), openerFor(map[string]string{"box.mtl": boxMTL}))
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	m := s.Meshes[1]
	want := [][3]float32{{1, 0, 0}, {2, 0, 0}, {2, 1, 0}, {1, 1, 0}}
	if len(m.Positions) != len(want) {
		t.Fatalf("expected %d positions, got %d", len(want), len(m.Positions))
	}
	for i, p := range want {
		if m.Positions[i] != p {
			t.Errorf("position %d = %v, want %v", i, m.Positions[i], p)
		}
	}
}

func TestParseOBJDedupesCorners(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
f 2 4 3
`
	s, err := parseOBJ(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	m := s.Meshes[0]
	if len(m.Positions) != 4 {
		t.Errorf("expected 4 unique vertices, got %d", len(m.Positions))
	}
	if m.HasNormals() || m.HasTexCoords(0) {
		t.Error("expected no normals or UVs")
	}
	if len(m.Faces) != 2 || m.Faces[1][0] != 1 || m.Faces[1][2] != 2 {
		t.Errorf("unexpected faces %v", m.Faces)
	}
}

func TestParseOBJMissingMaterial(t *testing.T) {
	src := `mtllib nowhere.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl ghost
f 1 2 3
`
	s, err := parseOBJ(strings.NewReader(src), openerFor(nil))
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	if len(s.Materials) != 1 || s.Materials[0].Name != "DefaultMaterial" {
		t.Fatalf("expected a default material, got %v", s.Materials)
	}
	if s.Meshes[0].MaterialIndex != 0 {
		t.Errorf("material index = %d, want 0", s.Meshes[0].MaterialIndex)
	}
	if s.Root.Children[0].Name != "defaultobject" {
		t.Errorf("expected implicit object node, got %q", s.Root.Children[0].Name)
	}
}

func TestParseOBJPartialAttributes(t *testing.T) {
	// The second corner has a UV, the first does not.
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0.5 0.25
f 1 2/1 3
`
	s, err := parseOBJ(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	m := s.Meshes[0]
	if len(m.TexCoords[0]) != len(m.Positions) {
		t.Fatalf("UV channel length %d, positions %d", len(m.TexCoords[0]), len(m.Positions))
	}
	if m.TexCoords[0][0] != [2]float32{} || m.TexCoords[0][1] != [2]float32{0.5, 0.25} {
		t.Errorf("unexpected UVs %v", m.TexCoords[0])
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad vertex", "v 0 zero 0\n"},
		{"short vertex", "v 0 0\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"empty face", "v 0 0 0\nf\n"},
		{"bad normal ref", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseOBJ(strings.NewReader(tt.src), nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadFileOBJ(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "panel.obj"), []byte(cubeFaceOBJ), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "box.mtl"), []byte(boxMTL), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := ReadFile(filepath.Join(dir, "panel.obj"), Triangulate|FlipUVs|GenSmoothNormals|CalcTangentSpace)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if s.Incomplete() {
		t.Error("scene should be complete")
	}
	if s.Root.Name != "panel.obj" {
		t.Errorf("root name = %q", s.Root.Name)
	}
	for i, m := range s.Meshes {
		if len(m.Faces) != 2 {
			t.Errorf("mesh %d: expected 2 triangles, got %d", i, len(m.Faces))
		}
		if !m.HasTangents() {
			t.Errorf("mesh %d: expected tangents", i)
		}
		// vt 0 0 flipped to (0, 1)
		if m.TexCoords[0][0] != [2]float32{0, 1} {
			t.Errorf("mesh %d: first UV = %v, want [0 1]", i, m.TexCoords[0][0])
		}
	}
	if s.Materials[0].Texture(TextureDiffuse, 0) != "wood.png" {
		t.Error("materials not loaded from disk")
	}
}

func TestReadFileUnsupported(t *testing.T) {
	_, err := ReadFile("scene.fbx", 0)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "none.obj"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadFileIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.obj")
	if err := os.WriteFile(path, []byte("# nothing\nv 0 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := ReadFile(path, Triangulate)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !s.Incomplete() {
		t.Error("expected FlagIncomplete for a scene without meshes")
	}
}

func TestFileImporter(t *testing.T) {
	_, err := FileImporter{}.ReadFile("model.blend", 0)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
