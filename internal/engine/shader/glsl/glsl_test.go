package glsl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedSources(t *testing.T) {
	for _, name := range Names() {
		vs, fs, err := Source(name, "")
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, src := range []string{vs, fs} {
			if !strings.HasPrefix(src, "#version 410 core") {
				t.Errorf("%s: missing version directive", name)
			}
		}
	}
}

func TestLightingUniformNames(t *testing.T) {
	_, fs, err := Source(Lighting, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"uPointLights[NR_POINT_LIGHTS]", "uSpotLight", "dirLight", "material", "innerCutOff", "outerCutOff"} {
		if !strings.Contains(fs, want) {
			t.Errorf("lighting.fs does not declare %s", want)
		}
	}

	vs, _, _ := Source(Lighting, "")
	if !strings.Contains(vs, "normalTransform") {
		t.Error("lighting.vs does not use normalTransform")
	}
}

func TestUnknownShader(t *testing.T) {
	_, _, err := Source("bloom", "")
	if !errors.Is(err, ErrUnknownShader) {
		t.Errorf("expected ErrUnknownShader, got %v", err)
	}
}

func TestSourceFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "flat.vs"), []byte("vertex"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "flat.fs"), []byte("fragment"), 0644); err != nil {
		t.Fatal(err)
	}

	vs, fs, err := Source("flat", dir)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if vs != "vertex" || fs != "fragment" {
		t.Errorf("got %q / %q", vs, fs)
	}

	_, _, err = Source(Lighting, dir)
	if err == nil || errors.Is(err, ErrUnknownShader) {
		t.Errorf("missing file in dir should be a read error, got %v", err)
	}
}
