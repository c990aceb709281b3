// Package opengl implements gpu.Device on top of go-gl.
// All methods must be called from the goroutine that owns the GL context.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

// Device issues OpenGL calls. The zero value is ready to use once Init succeeded.
type Device struct{}

// Init loads the OpenGL function pointers for the current context.
func Init() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	return &Device{}, nil
}

// Version returns the driver's GL_VERSION string.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// SetupFrameState enables depth testing with the default LESS comparison.
func (d *Device) SetupFrameState() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

// Viewport maps NDC onto a width x height region at the origin.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear clears the colour and depth buffers, colour to c.
func (d *Device) Clear(c [4]float32) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// NewBuffer creates a buffer object bound to target and fills it with data.
func (d *Device) NewBuffer(target uint32, data []byte) uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(target, id)
	if len(data) > 0 {
		gl.BufferData(target, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	} else {
		gl.BufferData(target, 0, nil, gl.STATIC_DRAW)
	}
	return id
}

// NewVertexArray creates a VAO reading the given layout from vbo. A non-zero
// ebo is recorded as the element buffer. The VAO is unbound on return.
func (d *Device) NewVertexArray(vbo, ebo uint32, layout gpu.Layout) uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if ebo != 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	}

	setupAttributes(layout)

	gl.BindVertexArray(0)
	return vao
}

// setupAttributes describes layout on the bound VAO and ARRAY_BUFFER.
func setupAttributes(layout gpu.Layout) {
	for _, a := range layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, int32(layout.Stride), uintptr(a.Offset))
	}
}

// CreateMesh uploads interleaved vertices and indices and configures the VAO.
func (d *Device) CreateMesh(vertices []byte, layout gpu.Layout, indices []uint32) gpu.MeshHandle {
	var h gpu.MeshHandle

	gl.GenVertexArrays(1, &h.VAO)
	gl.BindVertexArray(h.VAO)

	h.VBO = d.NewBuffer(gl.ARRAY_BUFFER, vertices)

	gl.GenBuffers(1, &h.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h.EBO)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	setupAttributes(layout)

	gl.BindVertexArray(0)
	return h
}

// DeleteMesh releases the VAO and both buffers.
func (d *Device) DeleteMesh(h gpu.MeshHandle) {
	if h.VAO != 0 {
		gl.DeleteVertexArrays(1, &h.VAO)
	}
	if h.VBO != 0 {
		gl.DeleteBuffers(1, &h.VBO)
	}
	if h.EBO != 0 {
		gl.DeleteBuffers(1, &h.EBO)
	}
}

// DeleteVertexArray releases a VAO created with NewVertexArray.
func (d *Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

// DeleteBuffer releases a buffer created with NewBuffer.
func (d *Device) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

// ActiveTexture selects texture unit GL_TEXTURE0+unit.
func (d *Device) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

// BindTexture2D binds id to the active unit's TEXTURE_2D target.
func (d *Device) BindTexture2D(id uint32) {
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// DrawIndexed draws count uint32 indices as triangles from vao.
func (d *Device) DrawIndexed(vao uint32, count int) {
	gl.BindVertexArray(vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// DrawArrays draws count vertices as triangles from vao.
func (d *Device) DrawArrays(vao uint32, count int) {
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	gl.BindVertexArray(0)
}

// GenTexture allocates a texture object name.
func (d *Device) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

// UploadTexture2D fills id with img, builds mipmaps and sets repeat wrapping
// with trilinear minification.
func (d *Device) UploadTexture2D(id uint32, img gpu.Image) {
	gl.BindTexture(gl.TEXTURE_2D, id)

	// Rows of 1-3 channel images are not 4-byte aligned.
	if img.Format.Channels() != 4 {
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	}

	var ptr unsafe.Pointer
	if len(img.Pix) > 0 {
		ptr = gl.Ptr(img.Pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, glFormat(img.InternalFormat), int32(img.Width), int32(img.Height), 0,
		uint32(glFormat(img.Format)), gl.UNSIGNED_BYTE, ptr)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
}

// DeleteTexture releases a texture object.
func (d *Device) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

// ReadPixels returns the RGBA contents of the current read framebuffer,
// bottom row first.
func (d *Device) ReadPixels(width, height int) []byte {
	pix := make([]byte, width*height*4)
	if len(pix) == 0 {
		return pix
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
	return pix
}

func glFormat(f gpu.PixelFormat) int32 {
	switch f {
	case gpu.FormatRed:
		return gl.RED
	case gpu.FormatRG:
		return gl.RG
	case gpu.FormatRGBA:
		return gl.RGBA
	case gpu.FormatSRGB:
		return gl.SRGB
	case gpu.FormatSRGBAlpha:
		return gl.SRGB_ALPHA
	default:
		return gl.RGB
	}
}
