// Package texture decodes image files and uploads them as 2D textures.
package texture

import "github.com/Faultbox/learngl/internal/engine/gpu"

// Format pairs the pixel-transfer layout with the GPU storage format.
type Format struct {
	Pixel    gpu.PixelFormat
	Internal gpu.PixelFormat
}

// SelectFormat picks the texture format for an image with the given number
// of 8-bit channels. Gamma requests sRGB storage for colour images.
// Unknown channel counts fall back to RGB.
func SelectFormat(channels int, gamma bool) Format {
	switch channels {
	case 1:
		return Format{Pixel: gpu.FormatRed, Internal: gpu.FormatRed}
	case 2:
		return Format{Pixel: gpu.FormatRG, Internal: gpu.FormatRG}
	case 3:
		if gamma {
			return Format{Pixel: gpu.FormatRGB, Internal: gpu.FormatSRGB}
		}
		return Format{Pixel: gpu.FormatRGB, Internal: gpu.FormatRGB}
	case 4:
		if gamma {
			return Format{Pixel: gpu.FormatRGBA, Internal: gpu.FormatSRGBAlpha}
		}
		return Format{Pixel: gpu.FormatRGBA, Internal: gpu.FormatRGBA}
	default:
		return Format{Pixel: gpu.FormatRGB, Internal: gpu.FormatRGB}
	}
}

// repack converts tightly packed pixels from one channel count to another.
// Missing channels repeat the last source channel; extra ones are dropped.
func repack(pix []byte, from, to int) []byte {
	if from <= 0 || from == to {
		return pix
	}
	n := len(pix) / from
	out := make([]byte, n*to)
	for i := 0; i < n; i++ {
		src := pix[i*from : i*from+from]
		dst := out[i*to : i*to+to]
		for c := range dst {
			if c < from {
				dst[c] = src[c]
			} else {
				dst[c] = src[from-1]
			}
		}
	}
	return out
}
