package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Pixels is a decoded image as tightly packed 8-bit channels, top row first.
type Pixels struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Decoder turns an image file into Pixels.
type Decoder interface {
	Decode(path string) (Pixels, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string) (Pixels, error)

// Decode calls f(path).
func (f DecoderFunc) Decode(path string) (Pixels, error) {
	return f(path)
}

// FileDecoder reads images from disk. The channel count reported is the one
// stored in the file, not the one Go's decoders expand it to.
type FileDecoder struct {
	// MaxSize, when positive, downscales images whose width or height
	// exceeds it, keeping the aspect ratio.
	MaxSize int
}

// Decode reads and decodes the file at path.
func (d FileDecoder) Decode(path string) (Pixels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pixels{}, err
	}
	return decodeBytes(data, filepath.Ext(path), d.MaxSize)
}

// DecodeBytes decodes an in-memory image. ext selects the TGA decoder, which
// has no magic number to sniff; every other format is detected from content.
func DecodeBytes(data []byte, ext string) (Pixels, error) {
	return decodeBytes(data, ext, 0)
}

func decodeBytes(data []byte, ext string, maxSize int) (Pixels, error) {
	var img image.Image
	var err error
	if strings.EqualFold(ext, ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return Pixels{}, fmt.Errorf("decode: %w", err)
	}

	channels, ok := pngChannels(data)
	if !ok {
		channels = imageChannels(img)
	}
	if maxSize > 0 {
		img = resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Lanczos3)
	}
	return pack(img, channels), nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngChannels reads the channel count from a PNG's IHDR colour type.
func pngChannels(data []byte) (int, bool) {
	if len(data) < 33 || !bytes.HasPrefix(data, pngSignature) {
		return 0, false
	}
	if string(data[12:16]) != "IHDR" {
		return 0, false
	}

	switch data[25] {
	case 0:
		return 1, true
	case 2:
		return 3, true
	case 3:
		if pngHasChunk(data, "tRNS") {
			return 4, true
		}
		return 3, true
	case 4:
		return 2, true
	case 6:
		return 4, true
	}
	return 0, false
}

// pngHasChunk scans chunk headers up to the first IDAT.
func pngHasChunk(data []byte, name string) bool {
	off := len(pngSignature)
	for off+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		if typ == name {
			return true
		}
		if typ == "IDAT" {
			return false
		}
		off += 12 + length
	}
	return false
}

// imageChannels guesses the stored channel count of a non-PNG image.
func imageChannels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// pack flattens img into the requested number of channels. Two channels are
// luminance plus alpha.
func pack(img image.Image, channels int) Pixels {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := Pixels{Width: w, Height: h, Channels: channels, Pix: make([]byte, w*h*channels)}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			switch channels {
			case 1:
				out.Pix[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			case 2:
				out.Pix[i] = color.GrayModel.Convert(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}).(color.Gray).Y
				out.Pix[i+1] = c.A
			case 3:
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = c.R, c.G, c.B
			default:
				out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = c.R, c.G, c.B, c.A
			}
			i += channels
		}
	}
	return out
}
