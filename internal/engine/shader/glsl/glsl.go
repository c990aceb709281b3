// Package glsl embeds the GLSL sources of the demo programs.
package glsl

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrUnknownShader is returned for names with no embedded source pair.
var ErrUnknownShader = errors.New("unknown shader")

// Program names.
const (
	Lighting  = "lighting"
	LightCube = "light_cube"
	Model     = "model"
)

//go:embed *.vs *.fs
var sources embed.FS

// Source returns the vertex and fragment source for name. When dir is set
// the files are read from dir/<name>.vs and dir/<name>.fs instead.
func Source(name, dir string) (vertex, fragment string, err error) {
	var fsys fs.FS = sources
	if dir != "" {
		fsys = os.DirFS(dir)
	}

	vs, err := fs.ReadFile(fsys, name+".vs")
	if err != nil {
		return "", "", sourceErr(name, dir, err)
	}
	frag, err := fs.ReadFile(fsys, name+".fs")
	if err != nil {
		return "", "", sourceErr(name, dir, err)
	}
	return string(vs), string(frag), nil
}

func sourceErr(name, dir string, err error) error {
	if dir == "" && errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrUnknownShader, name)
	}
	return fmt.Errorf("read shader %q from %s: %w", name, filepath.Clean(dir), err)
}

// Names lists the embedded programs.
func Names() []string {
	return []string{Lighting, LightCube, Model}
}
