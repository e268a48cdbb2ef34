package textures

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

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewDataTexture(t *testing.T) {
	tex, err := NewDataTexture("ramp", make([]byte, 48*4), 48, 1)
	require.NoError(t, err)
	assert.Equal(t, 48, tex.Width)
	assert.Equal(t, 1, tex.Height)

	_, err = NewDataTexture("short", make([]byte, 10), 48, 1)
	assert.ErrorIs(t, err, ErrPixelCount)

	_, err = NewDataTexture("empty", nil, 0, 0)
	assert.ErrorIs(t, err, ErrPixelCount)
}

func TestDecodeBytes(t *testing.T) {
	data := encodePNG(t, 2, 3, color.RGBA{R: 255, G: 128, B: 0, A: 255})

	tex, err := DecodeBytes("orange", data)
	require.NoError(t, err)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 3, tex.Height)
	require.Len(t, tex.Pixels, 2*3*4)
	assert.Equal(t, []byte{255, 128, 0, 255}, tex.Pixels[:4])
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeBytes("junk", []byte("not an image"))
	assert.Error(t, err)
}

func TestCacheLoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "white.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 1, 1, color.RGBA{255, 255, 255, 255}), 0o644))

	c := NewCache()
	a, err := c.Load(path)
	require.NoError(t, err)
	b, err := c.Load(path)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())

	_, err = c.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestNewSolidTexture(t *testing.T) {
	tex := NewSolidTexture("white", 255, 255, 255, 255)
	assert.Equal(t, []byte{255, 255, 255, 255}, tex.Pixels)
}
