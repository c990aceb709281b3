package texture

import (
	"image/color"
	"testing"
)

// tgaImage builds a 1-pixel-high TGA with len(body)/bytesPerPixel width for
// raw images. RLE callers pass the width through body length themselves.
func tgaImage(imageType, bpp int, descriptor byte, body []byte) []byte {
	return tgaImageSized(imageType, bpp, descriptor, len(body)/(bpp/8), 1, body)
}

func tgaImageSized(imageType, bpp int, descriptor byte, width, height int, body []byte) []byte {
	h := make([]byte, 18)
	h[2] = byte(imageType)
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = byte(bpp)
	h[17] = descriptor
	return append(h, body...)
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 1x2, bottom-up: first stored row is the bottom one.
	data := tgaImageSized(TGATypeUncompressed, 32, 0, 1, 2, []byte{
		0, 0, 255, 255, // bottom: red
		255, 0, 0, 128, // top: blue, half alpha
	})

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	top := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	bottom := color.NRGBAModel.Convert(img.At(0, 1)).(color.NRGBA)
	if top != (color.NRGBA{B: 255, A: 128}) {
		t.Errorf("top = %v, want blue with alpha 128", top)
	}
	if bottom != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("bottom = %v, want opaque red", bottom)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// One run packet of 3 green pixels, top-to-bottom.
	data := tgaImageSized(TGATypeRLE, 24, 0x20, 3, 1, []byte{0x82, 0, 255, 0})

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	for x := 0; x < 3; x++ {
		c := color.NRGBAModel.Convert(img.At(x, 0)).(color.NRGBA)
		if c != (color.NRGBA{G: 255, A: 255}) {
			t.Errorf("pixel %d = %v, want green", x, c)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte{0, 0, 2}},
		{"color mapped", func() []byte { d := tgaImage(TGATypeUncompressed, 24, 0, []byte{1, 2, 3}); d[1] = 1; return d }()},
		{"unsupported type", tgaImage(1, 24, 0, []byte{1, 2, 3})},
		{"unsupported depth", tgaImageSized(TGATypeUncompressed, 16, 0, 1, 1, []byte{1, 2})},
		{"truncated pixels", tgaImageSized(TGATypeUncompressed, 24, 0, 4, 4, []byte{1, 2, 3})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}
