package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

var errTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes an uncompressed or RLE true-colour TGA image with 24 or
// 32 bits per pixel. 24-bit images come back opaque.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, errors.New("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, errors.New("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		src:         data[offset:],
		bpp:         bpp / 8,
		width:       width,
		height:      height,
		topToBottom: descriptor&0x20 != 0,
	}
	if bpp == 24 {
		d.rgb = image.NewRGBA(image.Rect(0, 0, width, height))
		d.set = func(x, y int, c color.NRGBA) {
			d.rgb.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	} else {
		d.rgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		d.set = d.rgba.SetNRGBA
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}

	if d.rgb != nil {
		return d.rgb, nil
	}
	return d.rgba, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	bpp         int
	width       int
	height      int
	topToBottom bool

	rgb  *image.RGBA
	rgba *image.NRGBA
	set  func(x, y int, c color.NRGBA)
}

// pixel reads one BGR(A) pixel from the stream.
func (d *tgaDecoder) pixel() (color.NRGBA, bool) {
	if d.pos+d.bpp > len(d.src) {
		return color.NRGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c, true
}

// put stores pixel number i, flipping bottom-up files.
func (d *tgaDecoder) put(i int, c color.NRGBA) {
	x := i % d.width
	y := i / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.set(x, y, c)
}

func (d *tgaDecoder) raw() error {
	total := d.width * d.height
	if len(d.src) < total*d.bpp {
		return errTGATruncated
	}
	for i := 0; i < total; i++ {
		c, _ := d.pixel()
		d.put(i, c)
	}
	return nil
}

// rle decodes run-length packets. A short stream leaves remaining pixels zero.
func (d *tgaDecoder) rle() error {
	total := d.width * d.height
	i := 0
	for i < total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.pixel()
			if !ok {
				break
			}
			for n := 0; n < count && i < total; n++ {
				d.put(i, c)
				i++
			}
			continue
		}

		for n := 0; n < count && i < total; n++ {
			c, ok := d.pixel()
			if !ok {
				return nil
			}
			d.put(i, c)
			i++
		}
	}
	return nil
}
