// Package gpu describes the GPU operations the mesh, model, and texture
// code depend on. The OpenGL implementation lives in gpu/opengl.
package gpu

// PixelFormat names a texture storage or pixel-transfer format.
type PixelFormat int

// Pixel formats.
const (
	FormatRed PixelFormat = iota + 1
	FormatRG
	FormatRGB
	FormatRGBA
	FormatSRGB
	FormatSRGBAlpha
)

// String returns the GL-style name of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatRed:
		return "RED"
	case FormatRG:
		return "RG"
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	case FormatSRGB:
		return "SRGB"
	case FormatSRGBAlpha:
		return "SRGB_ALPHA"
	default:
		return "UNKNOWN"
	}
}

// Channels returns the number of 8-bit channels per pixel for transfer formats.
func (f PixelFormat) Channels() int {
	switch f {
	case FormatRed:
		return 1
	case FormatRG:
		return 2
	case FormatRGB, FormatSRGB:
		return 3
	case FormatRGBA, FormatSRGBAlpha:
		return 4
	default:
		return 0
	}
}

// Image is tightly packed 8-bit pixel data ready for a 2D texture upload.
type Image struct {
	Width          int
	Height         int
	Format         PixelFormat // layout of Pix
	InternalFormat PixelFormat // GPU storage
	Pix            []byte
}

// Attribute is one float vertex attribute inside an interleaved buffer.
type Attribute struct {
	Location   uint32
	Components int32
	Offset     int
}

// Layout describes an interleaved float vertex buffer.
type Layout struct {
	Stride     int
	Attributes []Attribute
}

// MeshHandle holds the GPU objects backing one indexed mesh.
type MeshHandle struct {
	VAO uint32
	VBO uint32
	EBO uint32
}

// MeshDevice uploads and draws indexed meshes.
type MeshDevice interface {
	CreateMesh(vertices []byte, layout Layout, indices []uint32) MeshHandle
	DeleteMesh(h MeshHandle)
	ActiveTexture(unit int)
	BindTexture2D(id uint32)
	DrawIndexed(vao uint32, count int)
}

// TextureDevice allocates and fills 2D textures.
type TextureDevice interface {
	GenTexture() uint32
	UploadTexture2D(id uint32, img Image)
	DeleteTexture(id uint32)
}

// Device is the full set of operations used by models.
type Device interface {
	MeshDevice
	TextureDevice
}
