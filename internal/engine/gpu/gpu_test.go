package gpu

import "testing"

func TestPixelFormatChannels(t *testing.T) {
	tests := []struct {
		format   PixelFormat
		channels int
		name     string
	}{
		{FormatRed, 1, "RED"},
		{FormatRG, 2, "RG"},
		{FormatRGB, 3, "RGB"},
		{FormatSRGB, 3, "SRGB"},
		{FormatRGBA, 4, "RGBA"},
		{FormatSRGBAlpha, 4, "SRGB_ALPHA"},
		{PixelFormat(0), 0, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.format.Channels(); got != tt.channels {
			t.Errorf("%s.Channels() = %d, want %d", tt.name, got, tt.channels)
		}
		if got := tt.format.String(); got != tt.name {
			t.Errorf("String() = %s, want %s", got, tt.name)
		}
	}
}
