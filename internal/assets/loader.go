// Package assets resolves shader sources and images by name.
//
// Lookup order is the configured resource root, then the current working
// directory, then the copies built into the binary. Shaders live under a
// "shaders" subdirectory of each root.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

var ErrNotFound = errors.New("assets: not found")

//go:embed shaders/*.glsl
var builtin embed.FS

const shaderDir = "shaders"

type Loader struct {
	dirs    []string
	builtin fs.FS
	images  map[string]func() *image.RGBA
	log     *slog.Logger
}

func NewLoader(root string, log *slog.Logger) *Loader {
	return newLoader([]string{root, "."}, builtin, log)
}

func newLoader(dirs []string, files fs.FS, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		dirs:    dirs,
		builtin: files,
		images:  map[string]func() *image.RGBA{"helpmessage.png": HelpCard},
		log:     log,
	}
}

func (l *Loader) Shader(name string) (string, error) {
	data, err := l.read(path.Join(shaderDir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Image decodes a named image into RGBA. Names without a file on disk fall
// back to images generated in process.
func (l *Loader) Image(name string) (*image.RGBA, error) {
	data, where, err := l.readDirs(name)
	if err == nil {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("assets: decode %s: %w", where, err)
		}
		return toRGBA(img), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if generate, ok := l.images[name]; ok {
		l.log.Debug("using built-in image", "name", name)
		return generate(), nil
	}
	return nil, err
}

func (l *Loader) read(rel string) ([]byte, error) {
	data, _, err := l.readDirs(rel)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return data, err
	}
	if l.builtin != nil {
		data, berr := fs.ReadFile(l.builtin, rel)
		if berr == nil {
			l.log.Debug("using built-in asset", "name", rel)
			return data, nil
		}
	}
	return nil, err
}

func (l *Loader) readDirs(rel string) ([]byte, string, error) {
	for _, dir := range l.dirs {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, filepath.FromSlash(rel))
		data, err := os.ReadFile(p)
		if err == nil {
			l.log.Debug("asset resolved", "path", p)
			return data, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, p, fmt.Errorf("assets: read %s: %w", p, err)
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrNotFound, rel)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(out, image.Point{}, img, b, xdraw.Src, nil)
	return out
}
