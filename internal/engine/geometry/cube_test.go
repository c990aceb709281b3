package geometry

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCubeVertices(t *testing.T) {
	if len(CubeVertices) != CubeVertexCount*CubeStride {
		t.Fatalf("got %d floats, want %d", len(CubeVertices), CubeVertexCount*CubeStride)
	}
	for i := 0; i < CubeVertexCount; i++ {
		v := CubeVertices[i*CubeStride:]
		for j := 0; j < 3; j++ {
			if v[j] != 0.5 && v[j] != -0.5 {
				t.Errorf("vertex %d: position %v off the unit cube", i, v[:3])
			}
		}
		n := mgl32.Vec3{v[3], v[4], v[5]}
		if n.Len() != 1 {
			t.Errorf("vertex %d: normal %v not unit", i, n)
		}
		// The normal points out of the face the vertex lies on.
		p := mgl32.Vec3{v[0], v[1], v[2]}
		if p.Dot(n) != 0.5 {
			t.Errorf("vertex %d: normal %v not outward at %v", i, n, p)
		}
	}
}

func TestLayouts(t *testing.T) {
	c := CubeLayout()
	if c.Stride != 32 || len(c.Attributes) != 3 || c.Attributes[2].Offset != 24 {
		t.Errorf("unexpected cube layout %+v", c)
	}
	l := LampLayout()
	if l.Stride != 32 || len(l.Attributes) != 1 {
		t.Errorf("unexpected lamp layout %+v", l)
	}
}

func TestCubeModelMatrix(t *testing.T) {
	if !CubeModelMatrix(0).ApproxEqual(mgl32.Ident4()) {
		t.Error("cube 0 should have an identity transform")
	}

	m := CubeModelMatrix(1)
	if !m.Col(3).Vec3().ApproxEqual(CubePositions[1]) {
		t.Errorf("translation = %v, want %v", m.Col(3).Vec3(), CubePositions[1])
	}
	// The rotation axis is left unchanged.
	axis := mgl32.Vec3{1, 0.3, 0.5}.Normalize()
	rotated := m.Mul4x1(axis.Vec4(0)).Vec3()
	if !rotated.ApproxEqualThreshold(axis, 1e-5) {
		t.Errorf("axis rotated to %v", rotated)
	}
	// 20 degrees between a perpendicular vector and its image.
	perp := axis.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	img := m.Mul4x1(perp.Vec4(0)).Vec3()
	if got := mgl32.RadToDeg(float32(acos(perp.Dot(img)))); got < 19.9 || got > 20.1 {
		t.Errorf("rotation angle = %v degrees, want 20", got)
	}
}

func TestLampModelMatrix(t *testing.T) {
	m := LampModelMatrix(mgl32.Vec3{1, 2, 3})
	p := m.Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1}).Vec3()
	if !p.ApproxEqualThreshold(mgl32.Vec3{1.1, 2.1, 3.1}, 1e-5) {
		t.Errorf("corner = %v, want (1.1, 2.1, 3.1)", p)
	}
}

func TestNormalMatrix(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	model := mgl32.Scale3D(2, 1, 1)
	n := NormalMatrix(view, model)

	// A non-uniform scale must not tilt a normal off its plane.
	normal := n.Mul4x1(mgl32.Vec4{1, 1, 0, 0}).Vec3().Normalize()
	want := mgl32.Vec3{0.5, 1, 0}.Normalize()
	if !normal.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("normal = %v, want %v", normal, want)
	}
}

func acos(x float32) float64 {
	return math.Acos(float64(mgl32.Clamp(x, -1, 1)))
}

func TestFloatBytes(t *testing.T) {
	b := FloatBytes(CubeVertices)
	if len(b) != len(CubeVertices)*4 {
		t.Fatalf("len = %d, want %d", len(b), len(CubeVertices)*4)
	}
	if got := math.Float32frombits(binary.NativeEndian.Uint32(b[4:])); got != CubeVertices[1] {
		t.Errorf("second float = %v, want %v", got, CubeVertices[1])
	}
	if FloatBytes(nil) != nil {
		t.Error("FloatBytes(nil) should be nil")
	}
}
