package texture

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

// pngHeader builds a signature plus IHDR with the given colour type, followed
// by the named extra chunks and an IDAT.
func pngHeader(colorType byte, extra ...string) []byte {
	var b bytes.Buffer
	b.Write(pngSignature)

	chunk := func(name string, data []byte) {
		var l [4]byte
		binary.BigEndian.PutUint32(l[:], uint32(len(data)))
		b.Write(l[:])
		b.WriteString(name)
		b.Write(data)
		b.Write([]byte{0, 0, 0, 0}) // CRC is not checked
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], 1)
	binary.BigEndian.PutUint32(ihdr[4:], 1)
	ihdr[8] = 8
	ihdr[9] = colorType
	chunk("IHDR", ihdr)
	for _, name := range extra {
		chunk(name, []byte{0})
	}
	chunk("IDAT", nil)
	return b.Bytes()
}

func TestPNGChannels(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		channels  int
		supported bool
	}{
		{"grey", pngHeader(0), 1, true},
		{"rgb", pngHeader(2), 3, true},
		{"palette", pngHeader(3, "PLTE"), 3, true},
		{"palette with tRNS", pngHeader(3, "PLTE", "tRNS"), 4, true},
		{"grey alpha", pngHeader(4), 2, true},
		{"rgba", pngHeader(6), 4, true},
		{"bad colour type", pngHeader(7), 0, false},
		{"not png", []byte("GIF89a................................"), 0, false},
		{"short", pngSignature, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, ok := pngChannels(tt.data)
			if ok != tt.supported || ch != tt.channels {
				t.Errorf("pngChannels = (%d, %v), want (%d, %v)", ch, ok, tt.channels, tt.supported)
			}
		})
	}
}

func TestDecodeBytesPNG(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(0, 0, color.Gray{Y: 10})
	gray.SetGray(1, 0, color.Gray{Y: 200})

	opaque := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	opaque.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	translucent := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	translucent.SetNRGBA(0, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 7})

	tests := []struct {
		name     string
		img      image.Image
		channels int
		pix      []byte
	}{
		{"grey", gray, 1, []byte{10, 200}},
		{"rgb", opaque, 3, []byte{1, 2, 3}},
		{"rgba", translucent, 4, []byte{4, 5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, err := DecodeBytes(encodePNG(t, tt.img), ".png")
			if err != nil {
				t.Fatalf("DecodeBytes: %v", err)
			}
			if px.Channels != tt.channels {
				t.Errorf("channels = %d, want %d", px.Channels, tt.channels)
			}
			if !bytes.Equal(px.Pix, tt.pix) {
				t.Errorf("pix = %v, want %v", px.Pix, tt.pix)
			}
		})
	}
}

func TestDecodeBytesInvalid(t *testing.T) {
	if _, err := DecodeBytes([]byte("definitely not an image"), ".png"); err == nil {
		t.Error("expected decode error")
	}
}

func TestFileDecoderMissing(t *testing.T) {
	if _, err := (FileDecoder{}).Decode(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileDecoderTGAByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tile.TGA")
	if err := os.WriteFile(path, tgaImage(TGATypeUncompressed, 24, 0x20, []byte{3, 2, 1}), 0644); err != nil {
		t.Fatal(err)
	}

	px, err := (FileDecoder{}).Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if px.Channels != 3 || !bytes.Equal(px.Pix, []byte{1, 2, 3}) {
		t.Errorf("got %d channels %v, want 3 [1 2 3]", px.Channels, px.Pix)
	}
}

func TestFileDecoderMaxSize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	path := filepath.Join(t.TempDir(), "wide.png")
	if err := os.WriteFile(path, encodePNG(t, img), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		maxSize       int
		width, height int
	}{
		{0, 64, 32},
		{128, 64, 32},
		{16, 16, 8},
	}
	for _, tt := range tests {
		px, err := FileDecoder{MaxSize: tt.maxSize}.Decode(path)
		if err != nil {
			t.Fatalf("max %d: %v", tt.maxSize, err)
		}
		if px.Width != tt.width || px.Height != tt.height {
			t.Errorf("max %d: size %dx%d, want %dx%d", tt.maxSize, px.Width, px.Height, tt.width, tt.height)
		}
		if px.Channels != 4 || len(px.Pix) != tt.width*tt.height*4 {
			t.Errorf("max %d: %d channels, %d bytes", tt.maxSize, px.Channels, len(px.Pix))
		}
	}
}
