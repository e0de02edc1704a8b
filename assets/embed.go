package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/gametools/component"
)

//go:embed *.png
var assetsFS embed.FS

// ErrPlaceholder marks an image that could not be loaded. The image
// returned alongside it is still usable.
var ErrPlaceholder = errors.New("assets: placeholder image")

// Placeholder returns the 1×1 transparent image used for failed loads.
func Placeholder() image.Image {
	return image.NewNRGBA(image.Rect(0, 0, 1, 1))
}

// IsPlaceholder reports whether err came from a failed image load.
func IsPlaceholder(err error) bool {
	return errors.Is(err, ErrPlaceholder)
}

// LoadFile reads an asset from the working directory's assets folder,
// falling back to the embedded copy.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	if b, err := os.ReadFile(filepath.Join("assets", filepath.FromSlash(clean))); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(clean)
}

// LoadImage decodes an asset by assets-relative path. On failure it
// returns Placeholder() and an error wrapping ErrPlaceholder.
func LoadImage(path string) (image.Image, error) {
	img, err := decode(path)
	if err != nil {
		log.Warn("using placeholder image", "path", path, "err", err)
		return Placeholder(), fmt.Errorf("%w: %s: %v", ErrPlaceholder, path, err)
	}
	return img, nil
}

func decode(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// LoadSheet slices a sprite sheet into frames. A sheet that fails to load
// yields a single placeholder frame.
func LoadSheet(path string, frameW, frameH, start, count int) ([]image.Image, error) {
	sheet, err := LoadImage(path)
	if err != nil {
		return []image.Image{sheet}, err
	}
	frames := component.FramesFromSheet(sheet, frameW, frameH, start, count)
	if len(frames) == 0 {
		return []image.Image{Placeholder()}, fmt.Errorf("%w: %s: no %dx%d frames", ErrPlaceholder, path, frameW, frameH)
	}
	return frames, nil
}

// Names lists the embedded image assets.
func Names() []string {
	entries, err := assetsFS.ReadDir(".")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
