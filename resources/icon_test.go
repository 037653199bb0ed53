package resources

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, size int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	data, err := EncodePNG(img)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestRenderFallback(t *testing.T) {
	img := RenderFallback(TraySize)
	assert.Equal(t, image.Rect(0, 0, TraySize, TraySize), img.Bounds())

	// Corners stay transparent, the bar of the H is white, the disc is green.
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
	pad := TraySize / 5
	assert.Equal(t, glyphColor, img.NRGBAAt(pad+1, TraySize/2))
	assert.Equal(t, fillColor, img.NRGBAAt(TraySize/2, pad/2+2))
}

func TestGreyscale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 34, G: 197, B: 94, A: 255})

	out := Greyscale(src).NRGBAAt(0, 0)
	assert.Equal(t, out.R, out.G)
	assert.Equal(t, out.G, out.B)
	assert.Equal(t, uint8(127), out.A)
}

func TestDiscoverIconPath_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.png")
	writePNG(t, path, 16)

	assert.Equal(t, path, DiscoverIconPath(path))
}

func TestDiscoverIconPath_SearchesWorkingDirAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0o755))
	iconPath := filepath.Join(dir, "assets", "hypernate.png")
	writePNG(t, iconPath, 16)
	t.Chdir(dir)

	found := DiscoverIconPath(filepath.Join(dir, "missing.png"))
	resolvedFound, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	resolvedIcon, err := filepath.EvalSymlinks(iconPath)
	require.NoError(t, err)
	assert.Equal(t, resolvedIcon, resolvedFound)
}

func TestLoadIcon_ScalesDiscoveredIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	writePNG(t, path, 256)

	img := LoadIcon(path)
	assert.Equal(t, image.Rect(0, 0, TraySize, TraySize), img.Bounds())
}

func TestLoadIcon_FallsBackOnUndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	img := LoadIcon(path)
	assert.Equal(t, image.Rect(0, 0, TraySize, TraySize), img.Bounds())
}

func TestTrayIcons(t *testing.T) {
	active, inactive, err := TrayIcons(filepath.Join(t.TempDir(), "missing.png"))
	require.NoError(t, err)

	assert.Equal(t, "hypernate.png", active.Name())
	assert.Equal(t, "hypernate-off.png", inactive.Name())
	_, err = png.Decode(bytes.NewReader(active.Content()))
	assert.NoError(t, err)
	assert.NotEqual(t, active.Content(), inactive.Content())
}

func TestWriteIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Icon.png")
	require.NoError(t, WriteIcon(path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, TraySize, img.Bounds().Dx())
}
