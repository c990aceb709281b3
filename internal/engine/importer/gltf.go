package importer

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// readGLTF converts a glTF document. Node transforms are not applied; each
// primitive with triangle topology becomes one mesh.
func readGLTF(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return convertGLTF(doc, filepath.Base(path))
}

func convertGLTF(doc *gltf.Document, name string) (*Scene, error) {
	scene := &Scene{}
	defMat := -1

	for i, gm := range doc.Materials {
		scene.Materials = append(scene.Materials, gltfMaterial(doc, i, gm))
	}

	// Scene mesh indices per glTF mesh, one per accepted primitive.
	meshPrims := make([][]int, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := gltfPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			if m == nil {
				continue
			}
			m.Name = gm.Name
			if prim.Material != nil && *prim.Material < len(scene.Materials) {
				m.MaterialIndex = *prim.Material
			} else {
				m.MaterialIndex = scene.defaultMaterial(&defMat)
			}
			meshPrims[mi] = append(meshPrims[mi], len(scene.Meshes))
			scene.Meshes = append(scene.Meshes, m)
		}
	}

	nodes := make([]*Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		n := &Node{Name: gn.Name}
		if gn.Mesh != nil && *gn.Mesh < len(meshPrims) {
			n.Meshes = append(n.Meshes, meshPrims[*gn.Mesh]...)
		}
		nodes[i] = n
	}
	hasParent := make([]bool, len(nodes))
	children := make([][]int, len(nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c >= 0 && c < len(nodes) && !hasParent[c] && c != i {
				hasParent[c] = true
				children[i] = append(children[i], c)
				nodes[i].Children = append(nodes[i].Children, nodes[c])
			}
		}
	}

	var rootIdx []int
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, idx := range doc.Scenes[*doc.Scene].Nodes {
			if idx >= 0 && idx < len(nodes) {
				rootIdx = append(rootIdx, idx)
			}
		}
	} else {
		for i := range nodes {
			if !hasParent[i] {
				rootIdx = append(rootIdx, i)
			}
		}
	}
	if err := checkAcyclic(children, rootIdx); err != nil {
		return nil, err
	}
	roots := make([]*Node, len(rootIdx))
	for i, idx := range rootIdx {
		roots[i] = nodes[idx]
	}

	if len(roots) == 1 {
		scene.Root = roots[0]
	} else {
		scene.Root = &Node{Name: name, Children: roots}
	}
	if scene.Root.Name == "" {
		scene.Root.Name = name
	}
	return scene, nil
}

// checkAcyclic walks the hierarchy from roots and fails on the first node
// that is its own ancestor.
func checkAcyclic(children [][]int, roots []int) error {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make([]uint8, len(children))
	var walk func(i int) error
	walk = func(i int) error {
		switch state[i] {
		case onPath:
			return fmt.Errorf("node %d: cycle in hierarchy", i)
		case done:
			return nil
		}
		state[i] = onPath
		for _, c := range children[i] {
			if err := walk(c); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}
	for _, r := range roots {
		if err := walk(r); err != nil {
			return err
		}
	}
	return nil
}

// gltfMaterial maps base colour to the diffuse slot, metallic-roughness to
// specular and the normal texture to normals.
func gltfMaterial(doc *gltf.Document, i int, gm *gltf.Material) *Material {
	m := &Material{Name: gm.Name}
	if m.Name == "" {
		m.Name = fmt.Sprintf("material_%d", i)
	}
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorTexture != nil {
			if p, ok := gltfImagePath(doc, pbr.BaseColorTexture.Index); ok {
				m.AddTexture(TextureDiffuse, p)
			}
		}
		if pbr.MetallicRoughnessTexture != nil {
			if p, ok := gltfImagePath(doc, pbr.MetallicRoughnessTexture.Index); ok {
				m.AddTexture(TextureSpecular, p)
			}
		}
	}
	if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
		if p, ok := gltfImagePath(doc, *gm.NormalTexture.Index); ok {
			m.AddTexture(TextureNormals, p)
		}
	}
	return m
}

// gltfImagePath resolves a texture index to the image's relative URI.
// Images stored in buffers or data URIs are named "*<image index>".
func gltfImagePath(doc *gltf.Document, texIdx int) (string, bool) {
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return "", false
	}
	src := doc.Textures[texIdx].Source
	if src == nil || *src < 0 || *src >= len(doc.Images) {
		return "", false
	}
	img := doc.Images[*src]
	if img.BufferView != nil || img.URI == "" || img.IsEmbeddedResource() {
		return fmt.Sprintf("*%d", *src), true
	}
	return img.URI, true
}

// gltfPrimitive reads one primitive. It returns nil for point and line topologies.
func gltfPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	switch prim.Mode {
	case gltf.PrimitiveTriangles, gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
	default:
		return nil, nil
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	if posIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("POSITION accessor %d out of range", posIdx)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	m := &Mesh{Positions: positions}

	if idx, ok := prim.Attributes["NORMAL"]; ok && idx < len(doc.Accessors) {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		if len(normals) == len(positions) {
			m.Normals = normals
		}
	}
	if idx, ok := prim.Attributes["TANGENT"]; ok && idx < len(doc.Accessors) {
		tangents, err := modeler.ReadTangent(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("tangents: %w", err)
		}
		if len(tangents) == len(positions) {
			m.Tangents = make([][3]float32, len(tangents))
			for i, t := range tangents {
				m.Tangents[i] = [3]float32{t[0], t[1], t[2]}
			}
		}
	}
	for ch := 0; ch < MaxTexCoords; ch++ {
		idx, ok := prim.Attributes[fmt.Sprintf("TEXCOORD_%d", ch)]
		if !ok || idx >= len(doc.Accessors) {
			continue
		}
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("texcoord %d: %w", ch, err)
		}
		if len(uvs) == len(positions) {
			m.TexCoords[ch] = uvs
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if *prim.Indices >= len(doc.Accessors) {
			return nil, fmt.Errorf("index accessor %d out of range", *prim.Indices)
		}
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range for %d vertices", i, len(positions))
		}
	}

	m.Faces = triangles(prim.Mode, indices)
	return m, nil
}

// triangles assembles faces from an index stream.
func triangles(mode gltf.PrimitiveMode, idx []uint32) []Face {
	var faces []Face
	switch mode {
	case gltf.PrimitiveTriangleStrip:
		for i := 2; i < len(idx); i++ {
			if i%2 == 0 {
				faces = append(faces, Face{idx[i-2], idx[i-1], idx[i]})
			} else {
				faces = append(faces, Face{idx[i-1], idx[i-2], idx[i]})
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 2; i < len(idx); i++ {
			faces = append(faces, Face{idx[0], idx[i-1], idx[i]})
		}
	default:
		for i := 0; i+2 < len(idx); i += 3 {
			faces = append(faces, Face{idx[i], idx[i+1], idx[i+2]})
		}
	}
	return faces
}
