// Package geometry holds the built-in cube mesh and scene layout used by the lighting demo.
package geometry

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

// CubeStride is the number of floats per cube vertex: position, normal, texcoord.
const CubeStride = 8

// CubeVertexCount is the number of vertices in CubeVertices.
const CubeVertexCount = 36

// CubeVertices is a unit cube centred on the origin drawn as 12 triangles.
var CubeVertices = []float32{
	// positions, normals, texture coords
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	0.5, -0.5, -0.5, 0, 0, -1, 1, 0,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	-0.5, 0.5, -0.5, 0, 0, -1, 0, 1,
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,

	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	0.5, -0.5, 0.5, 0, 0, 1, 1, 0,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	-0.5, 0.5, 0.5, 0, 0, 1, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,

	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	-0.5, 0.5, -0.5, -1, 0, 0, 1, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, 0.5, -1, 0, 0, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,

	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, -0.5, 0.5, 1, 0, 0, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,

	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	0.5, -0.5, -0.5, 0, -1, 0, 1, 1,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0, 0, 0,
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,

	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	0.5, 0.5, -0.5, 0, 1, 0, 1, 1,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	-0.5, 0.5, 0.5, 0, 1, 0, 0, 0,
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
}

// CubeLayout binds position, normal and texcoord to locations 0, 1 and 2.
func CubeLayout() gpu.Layout {
	return gpu.Layout{
		Stride: CubeStride * 4,
		Attributes: []gpu.Attribute{
			{Location: 0, Components: 3, Offset: 0},
			{Location: 1, Components: 3, Offset: 3 * 4},
			{Location: 2, Components: 2, Offset: 6 * 4},
		},
	}
}

// LampLayout reads only positions from the cube buffer.
func LampLayout() gpu.Layout {
	return gpu.Layout{
		Stride:     CubeStride * 4,
		Attributes: []gpu.Attribute{{Location: 0, Components: 3, Offset: 0}},
	}
}

// CubePositions are the world positions of the lit cubes.
var CubePositions = []mgl32.Vec3{
	{0, 0, 0},
	{2, 5, -15},
	{-1.5, -2.2, -2.5},
	{-3.8, -2, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3, -7.5},
	{1.3, -2, -2.5},
	{1.5, 2, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1, -1.5},
}

// cubeAxis is the rotation axis of the lit cubes.
var cubeAxis = mgl32.Vec3{1, 0.3, 0.5}.Normalize()

// CubeModelMatrix places cube i: translate to CubePositions[i], then rotate
// 20*i degrees around (1, 0.3, 0.5).
func CubeModelMatrix(i int) mgl32.Mat4 {
	p := CubePositions[i%len(CubePositions)]
	angle := mgl32.DegToRad(20 * float32(i))
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(mgl32.HomogRotate3D(angle, cubeAxis))
}

// LampModelMatrix places a lamp cube at position, scaled to 0.2.
func LampModelMatrix(position mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).Mul4(mgl32.Scale3D(0.2, 0.2, 0.2))
}

// NormalMatrix returns transpose(inverse(view*model)) for view-space normals.
func NormalMatrix(view, model mgl32.Mat4) mgl32.Mat4 {
	return view.Mul4(model).Inv().Transpose()
}

// FloatBytes views v as raw bytes for a buffer upload. The result aliases v.
func FloatBytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}
