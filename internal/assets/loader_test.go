package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestShader_ResolutionOrder(t *testing.T) {
	root, cwd := t.TempDir(), t.TempDir()
	files := fstest.MapFS{
		"shaders/a.glsl": {Data: []byte("builtin a")},
		"shaders/b.glsl": {Data: []byte("builtin b")},
		"shaders/c.glsl": {Data: []byte("builtin c")},
	}
	writeFile(t, root, "shaders/a.glsl", "root a")
	writeFile(t, cwd, "shaders/a.glsl", "cwd a")
	writeFile(t, cwd, "shaders/b.glsl", "cwd b")
	l := newLoader([]string{root, cwd}, files, nil)

	cases := map[string]string{"a.glsl": "root a", "b.glsl": "cwd b", "c.glsl": "builtin c"}
	for name, want := range cases {
		got, err := l.Shader(name)
		if err != nil {
			t.Fatalf("Shader(%s): %v", name, err)
		}
		if got != want {
			t.Errorf("Shader(%s) = %q, want %q", name, got, want)
		}
	}
}

func TestShader_NotFound(t *testing.T) {
	l := newLoader([]string{t.TempDir(), ""}, fstest.MapFS{}, nil)
	_, err := l.Shader("missing.glsl")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestShader_BuiltinsPresent(t *testing.T) {
	l := NewLoader("", nil)
	for _, stage := range []string{"points", "grid", "labels", "overlay"} {
		for _, ext := range []string{".vert.glsl", ".frag.glsl"} {
			if _, err := l.Shader(stage + ext); err != nil {
				t.Errorf("built-in %s%s: %v", stage, ext, err)
			}
		}
	}
}

func TestImage_DecodesFromDisk(t *testing.T) {
	root := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(root, "dot.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	l := newLoader([]string{root}, nil, nil)
	img, err := l.Image("dot.png")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("pixel = %v", got)
	}
}

func TestImage_CorruptFileFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "helpmessage.png", "not a png")
	l := newLoader([]string{root}, nil, nil)
	if _, err := l.Image("helpmessage.png"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want decode error", err)
	}
}

func TestImage_GeneratedFallback(t *testing.T) {
	l := newLoader([]string{t.TempDir()}, nil, nil)
	img, err := l.Image("helpmessage.png")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Fatalf("empty help card")
	}
	if _, err := l.Image("other.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
