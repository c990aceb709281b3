package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func readOBJ(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	openMTL := func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, name))
	}

	scene, err := parseOBJ(f, openMTL)
	if err != nil {
		return nil, fmt.Errorf("parse obj %q: %w", path, err)
	}
	if scene.Root != nil && scene.Root.Name == "" {
		scene.Root.Name = filepath.Base(path)
	}
	return scene, nil
}

// objCorner references one vertex of a face. Indices are 0-based, -1 if absent.
type objCorner struct {
	v, vt, vn int
}

type objParser struct {
	positions [][3]float32
	uvs       [][2]float32
	normals   [][3]float32

	scene     *Scene
	materials map[string]int
	defMat    int
	openMTL   func(name string) (io.ReadCloser, error)

	node    *Node
	mesh    *Mesh
	matIdx  int
	corners map[objCorner]uint32
}

// parseOBJ reads OBJ text. Each o/g statement opens a child node of the root;
// each usemtl inside a node opens a new mesh on that node.
func parseOBJ(r io.Reader, openMTL func(name string) (io.ReadCloser, error)) (*Scene, error) {
	p := &objParser{
		scene:     &Scene{Root: &Node{}},
		materials: make(map[string]int),
		defMat:    -1,
		matIdx:    -1,
		openMTL:   openMTL,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		var err error
		switch fields[0] {
		case "v":
			var v [3]float32
			v, err = parseVec3(fields[1:])
			p.positions = append(p.positions, v)
		case "vn":
			var v [3]float32
			v, err = parseVec3(fields[1:])
			p.normals = append(p.normals, v)
		case "vt":
			var v [2]float32
			v, err = parseVec2(fields[1:])
			p.uvs = append(p.uvs, v)
		case "f":
			err = p.face(fields[1:])
		case "o", "g":
			name := ""
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			p.beginNode(name)
		case "usemtl":
			if len(fields) > 1 {
				p.useMaterial(strings.Join(fields[1:], " "))
			}
		case "mtllib":
			for _, name := range fields[1:] {
				p.loadMTL(name)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	p.pruneEmpty()
	return p.scene, nil
}

func (p *objParser) beginNode(name string) {
	p.node = &Node{Name: name}
	p.scene.Root.Children = append(p.scene.Root.Children, p.node)
	p.mesh = nil
}

func (p *objParser) useMaterial(name string) {
	idx, ok := p.materials[name]
	if !ok {
		idx = p.scene.defaultMaterial(&p.defMat)
	}
	if idx != p.matIdx {
		p.matIdx = idx
		// Faces after this line go to a fresh mesh.
		if p.mesh != nil && len(p.mesh.Faces) > 0 {
			p.mesh = nil
		} else if p.mesh != nil {
			p.mesh.MaterialIndex = idx
		}
	}
}

func (p *objParser) currentMesh() *Mesh {
	if p.node == nil {
		p.beginNode("defaultobject")
	}
	if p.mesh == nil {
		if p.matIdx < 0 {
			p.matIdx = p.scene.defaultMaterial(&p.defMat)
		}
		p.mesh = &Mesh{Name: p.node.Name, MaterialIndex: p.matIdx}
		p.node.Meshes = append(p.node.Meshes, len(p.scene.Meshes))
		p.scene.Meshes = append(p.scene.Meshes, p.mesh)
		p.corners = make(map[objCorner]uint32)
	}
	return p.mesh
}

func (p *objParser) face(refs []string) error {
	if len(refs) == 0 {
		return fmt.Errorf("empty face")
	}
	m := p.currentMesh()

	face := make(Face, 0, len(refs))
	for _, ref := range refs {
		c, err := p.corner(ref)
		if err != nil {
			return err
		}
		idx, ok := p.corners[c]
		if !ok {
			idx = uint32(len(m.Positions))
			p.corners[c] = idx
			p.appendVertex(m, c)
		}
		face = append(face, idx)
	}
	m.Faces = append(m.Faces, face)
	return nil
}

// appendVertex adds the corner's attributes, back-filling attribute slices
// that stayed empty until now so they keep the same length as Positions.
func (p *objParser) appendVertex(m *Mesh, c objCorner) {
	n := len(m.Positions)
	m.Positions = append(m.Positions, p.positions[c.v])

	if c.vn >= 0 || m.HasNormals() {
		if !m.HasNormals() {
			m.Normals = make([][3]float32, n)
		}
		var nv [3]float32
		if c.vn >= 0 {
			nv = p.normals[c.vn]
		}
		m.Normals = append(m.Normals, nv)
	}

	if c.vt >= 0 || m.HasTexCoords(0) {
		if !m.HasTexCoords(0) {
			m.TexCoords[0] = make([][2]float32, n)
		}
		var uv [2]float32
		if c.vt >= 0 {
			uv = p.uvs[c.vt]
		}
		m.TexCoords[0] = append(m.TexCoords[0], uv)
	}
}

// corner parses "v", "v/vt", "v//vn" or "v/vt/vn", resolving negative indices.
func (p *objParser) corner(ref string) (objCorner, error) {
	parts := strings.Split(ref, "/")
	c := objCorner{v: -1, vt: -1, vn: -1}

	var err error
	if c.v, err = resolveIndex(parts[0], len(p.positions)); err != nil || c.v < 0 {
		return c, fmt.Errorf("bad vertex reference %q", ref)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], len(p.uvs)); err != nil || c.vt < 0 {
			return c, fmt.Errorf("bad texcoord reference %q", ref)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], len(p.normals)); err != nil || c.vn < 0 {
			return c, fmt.Errorf("bad normal reference %q", ref)
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based or negative OBJ index to 0-based.
// It returns -1 when the result is out of range.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	default:
		return -1, nil
	}
}

// pruneEmpty drops nodes created by o/g lines that never received faces.
func (p *objParser) pruneEmpty() {
	kept := p.scene.Root.Children[:0]
	for _, n := range p.scene.Root.Children {
		if len(n.Meshes) > 0 {
			kept = append(kept, n)
		}
	}
	p.scene.Root.Children = kept
}

func (p *objParser) loadMTL(name string) {
	if p.openMTL == nil {
		return
	}
	rc, err := p.openMTL(name)
	if err != nil {
		// A missing library leaves usemtl names bound to the default material.
		return
	}
	defer rc.Close()

	for _, m := range parseMTL(rc) {
		if _, dup := p.materials[m.Name]; dup {
			continue
		}
		p.materials[m.Name] = len(p.scene.Materials)
		p.scene.Materials = append(p.scene.Materials, m)
	}
}

// parseMTL reads material definitions. Texture statements keep only the
// file name that ends the line, skipping option flags.
func parseMTL(r io.Reader) []*Material {
	var out []*Material
	var cur *Material

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])

		if key == "newmtl" {
			cur = &Material{Name: strings.Join(fields[1:], " ")}
			out = append(out, cur)
			continue
		}
		if cur == nil || len(fields) < 2 {
			continue
		}

		file := fields[len(fields)-1]
		switch key {
		case "map_kd":
			cur.AddTexture(TextureDiffuse, file)
		case "map_ks":
			cur.AddTexture(TextureSpecular, file)
		case "map_bump", "bump":
			cur.AddTexture(TextureHeight, file)
		case "norm", "map_kn":
			cur.AddTexture(TextureNormals, file)
		}
	}
	return out
}

func parseVec3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseVec2(fields []string) ([2]float32, error) {
	var v [2]float32
	if len(fields) < 1 {
		return v, fmt.Errorf("expected at least 1 component")
	}
	for i := 0; i < 2 && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}
