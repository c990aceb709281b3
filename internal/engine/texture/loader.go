package texture

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/logger"
)

// Loader decodes image files and uploads them as mipmapped 2D textures.
// It does no caching: every call allocates a new texture object.
type Loader struct {
	dev gpu.TextureDevice
	dec Decoder
	log *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithDecoder replaces the file decoder.
func WithDecoder(d Decoder) Option {
	return func(l *Loader) { l.dec = d }
}

// WithLogger sets the logger used for decode failures.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a loader that uploads through dev.
func NewLoader(dev gpu.TextureDevice, opts ...Option) *Loader {
	l := &Loader{
		dev: dev,
		dec: FileDecoder{},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Named("texture")
	}
	return l
}

// FromFile loads directory/path. See FromPath.
func (l *Loader) FromFile(path, directory string, gamma bool) uint32 {
	filename := path
	if directory != "" {
		filename = directory + "/" + path
	}
	return l.FromPath(filename, gamma)
}

// FromPath allocates a texture object and fills it from the image at
// filename. If decoding fails the error is logged and the returned handle
// names a texture with undefined contents.
func (l *Loader) FromPath(filename string, gamma bool) uint32 {
	id := l.dev.GenTexture()

	px, err := l.dec.Decode(filename)
	if err == nil {
		err = px.validate()
	}
	if err != nil {
		l.log.Error("failed to load texture", zap.String("path", filename), zap.Error(err))
		return id
	}

	f := SelectFormat(px.Channels, gamma)
	pix := px.Pix
	if want := f.Pixel.Channels(); want != px.Channels {
		pix = repack(pix, px.Channels, want)
	}

	l.dev.UploadTexture2D(id, gpu.Image{
		Width:          px.Width,
		Height:         px.Height,
		Format:         f.Pixel,
		InternalFormat: f.Internal,
		Pix:            pix,
	})

	l.log.Debug("texture loaded",
		zap.String("path", filename),
		zap.Uint32("id", id),
		zap.Int("width", px.Width),
		zap.Int("height", px.Height),
		zap.Int("channels", px.Channels),
		zap.Stringer("internal", f.Internal),
	)
	return id
}

func (px Pixels) validate() error {
	if px.Width <= 0 || px.Height <= 0 || px.Channels <= 0 {
		return fmt.Errorf("invalid image %dx%d with %d channels", px.Width, px.Height, px.Channels)
	}
	if want := px.Width * px.Height * px.Channels; len(px.Pix) < want {
		return fmt.Errorf("pixel buffer has %d bytes, want %d", len(px.Pix), want)
	}
	return nil
}
