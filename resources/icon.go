package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	xdraw "golang.org/x/image/draw"
)

// TraySize is the edge length of the tray icon in pixels.
const TraySize = 64

var preferredNames = []string{"hypernate.png", "app.png"}

var (
	fillColor    = color.NRGBA{R: 34, G: 197, B: 94, A: 255}
	outlineColor = color.NRGBA{R: 22, G: 163, B: 74, A: 255}
	glyphColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// TrayIcons returns the active icon and a greyscale copy for the inactive state.
func TrayIcons(override string) (fyne.Resource, fyne.Resource, error) {
	img := LoadIcon(override)

	active, err := EncodePNG(img)
	if err != nil {
		return nil, nil, fmt.Errorf("encode active icon: %w", err)
	}
	inactive, err := EncodePNG(Greyscale(img))
	if err != nil {
		return nil, nil, fmt.Errorf("encode inactive icon: %w", err)
	}
	return fyne.NewStaticResource("hypernate.png", active),
		fyne.NewStaticResource("hypernate-off.png", inactive), nil
}

// LoadIcon decodes the discovered icon scaled to TraySize, or renders the fallback.
func LoadIcon(override string) image.Image {
	path := DiscoverIconPath(override)
	if path != "" {
		if img, err := decodeFile(path); err == nil {
			return Scale(img, TraySize)
		}
	}
	return RenderFallback(TraySize)
}

// DiscoverIconPath returns override if it exists, else the first icon found in
// the search roots: a preferred name, then any PNG. Empty means none.
func DiscoverIconPath(override string) string {
	if override != "" {
		if info, err := os.Stat(override); err == nil && !info.IsDir() {
			return override
		}
	}

	for _, root := range SearchRoots() {
		for _, name := range preferredNames {
			candidate := filepath.Join(root, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		if matches, _ := filepath.Glob(filepath.Join(root, "*.png")); len(matches) > 0 {
			return matches[0]
		}
	}
	return ""
}

// SearchRoots lists icon search directories in priority order without duplicates:
// the executable's directory, the detected project root, the working directory,
// followed by any assets/ directory beneath them.
func SearchRoots() []string {
	var roots []string
	if exe, err := os.Executable(); err == nil {
		here := filepath.Dir(exe)
		roots = append(roots, here, projectRoot(here))
	}
	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, cwd)
	}

	withAssets := append([]string(nil), roots...)
	for _, root := range roots {
		assets := filepath.Join(root, "assets")
		if info, err := os.Stat(assets); err == nil && info.IsDir() {
			withAssets = append(withAssets, assets)
		}
	}

	seen := make(map[string]bool, len(withAssets))
	ordered := make([]string, 0, len(withAssets))
	for _, root := range withAssets {
		abs, err := filepath.Abs(root)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		ordered = append(ordered, abs)
	}
	return ordered
}

// projectRoot walks up at most five levels looking for assets/ or go.mod.
func projectRoot(start string) string {
	current := start
	for i := 0; i < 5; i++ {
		for _, marker := range []string{"assets", "go.mod"} {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return start
}

// Scale resizes img to a size x size square.
func Scale(img image.Image, size int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == size && bounds.Dy() == size {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

// RenderFallback draws a green disc with a white "H".
func RenderFallback(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	center := float64(size-1) / 2
	outer := float64(size)/2 - 1
	inner := outer - float64(max(1, size/16))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-center, float64(y)-center
			distance := dx*dx + dy*dy
			switch {
			case distance <= inner*inner:
				img.SetNRGBA(x, y, fillColor)
			case distance <= outer*outer:
				img.SetNRGBA(x, y, outlineColor)
			}
		}
	}

	bar := max(2, size/6)
	pad := size / 5
	glyph := image.NewUniform(glyphColor)
	xdraw.Draw(img, image.Rect(pad, pad, pad+bar, size-pad), glyph, image.Point{}, xdraw.Src)
	xdraw.Draw(img, image.Rect(size-pad-bar, pad, size-pad, size-pad), glyph, image.Point{}, xdraw.Src)
	xdraw.Draw(img, image.Rect(pad, size/2-bar/2, size-pad, size/2+bar/2), glyph, image.Point{}, xdraw.Src)
	return img
}

// Greyscale returns a desaturated, half-transparent copy used while inactive.
func Greyscale(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			grey := uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000)
			out.SetNRGBA(x, y, color.NRGBA{R: grey, G: grey, B: grey, A: c.A / 2})
		}
	}
	return out
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteIcon writes the icon LoadIcon would use to path as PNG.
func WriteIcon(path, override string) error {
	data, err := EncodePNG(LoadIcon(override))
	if err != nil {
		return fmt.Errorf("encode icon: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write icon: %w", err)
	}
	return nil
}

func decodeFile(path string) (image.Image, error) {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return nil, fmt.Errorf("decode %s: unsupported icon format", path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
