package importer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Apply runs the selected steps over every mesh in s.
func Apply(s *Scene, steps PostProcess) {
	for _, m := range s.Meshes {
		if steps&Triangulate != 0 {
			triangulate(m)
		}
		if steps&GenSmoothNormals != 0 && !m.HasNormals() {
			smoothNormals(m)
		}
		if steps&CalcTangentSpace != 0 && !m.HasTangents() {
			calcTangents(m)
		}
		if steps&FlipUVs != 0 {
			flipUVs(m)
		}
	}
}

func triangulate(m *Mesh) {
	out := make([]Face, 0, len(m.Faces))
	for _, f := range m.Faces {
		switch {
		case len(f) < 3:
			continue
		case len(f) == 3:
			out = append(out, f)
		default:
			for i := 1; i+1 < len(f); i++ {
				out = append(out, Face{f[0], f[i], f[i+1]})
			}
		}
	}
	m.Faces = out
}

func flipUVs(m *Mesh) {
	for ch := range m.TexCoords {
		for i := range m.TexCoords[ch] {
			m.TexCoords[ch][i][1] = 1 - m.TexCoords[ch][i][1]
		}
	}
}

// smoothNormals accumulates area-weighted face normals per vertex, then
// averages them across vertices that share a position.
func smoothNormals(m *Mesh) {
	const epsilon = 0.0001

	acc := make([]mgl32.Vec3, len(m.Positions))
	for _, f := range m.Faces {
		if len(f) < 3 {
			continue
		}
		p0 := mgl32.Vec3(m.Positions[f[0]])
		for i := 1; i+1 < len(f); i++ {
			e1 := mgl32.Vec3(m.Positions[f[i]]).Sub(p0)
			e2 := mgl32.Vec3(m.Positions[f[i+1]]).Sub(p0)
			n := e1.Cross(e2)
			acc[f[0]] = acc[f[0]].Add(n)
			acc[f[i]] = acc[f[i]].Add(n)
			acc[f[i+1]] = acc[f[i+1]].Add(n)
		}
	}

	// Group by quantized position. Keys stay float64 so large coordinates
	// cannot overflow into a shared bucket.
	groups := make(map[[3]float64][]int)
	for i, p := range m.Positions {
		key := [3]float64{
			math.Round(float64(p[0]) / epsilon),
			math.Round(float64(p[1]) / epsilon),
			math.Round(float64(p[2]) / epsilon),
		}
		groups[key] = append(groups[key], i)
	}

	m.Normals = make([][3]float32, len(m.Positions))
	for _, idxs := range groups {
		var sum mgl32.Vec3
		for _, i := range idxs {
			sum = sum.Add(acc[i])
		}
		n := safeNormalize(sum)
		for _, i := range idxs {
			m.Normals[i] = n
		}
	}
}

// calcTangents needs UV channel 0 and normals. Tangents are orthogonalized
// against the vertex normal.
func calcTangents(m *Mesh) {
	if !m.HasTexCoords(0) || !m.HasNormals() {
		return
	}
	uv := m.TexCoords[0]

	acc := make([]mgl32.Vec3, len(m.Positions))
	accum := func(i0, i1, i2 uint32) {
		p0 := mgl32.Vec3(m.Positions[i0])
		e1 := mgl32.Vec3(m.Positions[i1]).Sub(p0)
		e2 := mgl32.Vec3(m.Positions[i2]).Sub(p0)

		du1 := uv[i1][0] - uv[i0][0]
		dv1 := uv[i1][1] - uv[i0][1]
		du2 := uv[i2][0] - uv[i0][0]
		dv2 := uv[i2][1] - uv[i0][1]

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			return
		}
		r := 1 / denom
		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))

		acc[i0] = acc[i0].Add(t)
		acc[i1] = acc[i1].Add(t)
		acc[i2] = acc[i2].Add(t)
	}
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			accum(f[0], f[i], f[i+1])
		}
	}

	m.Tangents = make([][3]float32, len(m.Positions))
	for i := range m.Positions {
		n := mgl32.Vec3(m.Normals[i])
		t := acc[i].Sub(n.Mul(n.Dot(acc[i])))
		if t.Dot(t) < 1e-12 {
			// Degenerate: any direction perpendicular to N.
			if abs32(n.X()) < 0.9 {
				t = mgl32.Vec3{1, 0, 0}.Sub(n.Mul(n.X()))
			} else {
				t = mgl32.Vec3{0, 1, 0}.Sub(n.Mul(n.Y()))
			}
		}
		m.Tangents[i] = safeNormalize(t)
	}
}

func safeNormalize(v mgl32.Vec3) [3]float32 {
	l := v.Len()
	if l == 0 {
		return [3]float32{}
	}
	return v.Mul(1 / l)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
