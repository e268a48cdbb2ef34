package textures

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrPixelCount = errors.New("pixel data does not match texture size")

// Texture holds CPU-side RGBA8 pixel data (4 bytes per pixel, row-major,
// top-to-bottom). GPU upload is managed by the renderer backend.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte
}

// NewDataTexture wraps a baked RGBA8 byte table. The slice is used as is.
func NewDataTexture(name string, pixels []byte, width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("texture %q %dx%d with %d bytes: %w", name, width, height, len(pixels), ErrPixelCount)
	}
	return &Texture{
		Name:   name,
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// Decode reads a PNG, JPEG, WebP or BMP image and converts it to RGBA8.
func Decode(name string, r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", name, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &Texture{
		Name:   name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

// DecodeBytes is Decode over an in-memory encoded image.
func DecodeBytes(name string, data []byte) (*Texture, error) {
	return Decode(name, bytes.NewReader(data))
}

// LoadTexture reads an image file from disk.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()
	return Decode(path, f)
}

// Cache deduplicates textures loaded from disk. It is safe for concurrent
// use since asset loading runs off the frame thread.
type Cache struct {
	mu       sync.RWMutex
	textures map[string]*Texture
}

func NewCache() *Cache {
	return &Cache{textures: make(map[string]*Texture)}
}

// Load returns the cached texture for path, reading it on first use.
func (c *Cache) Load(path string) (*Texture, error) {
	c.mu.RLock()
	if tex, ok := c.textures[path]; ok {
		c.mu.RUnlock()
		return tex, nil
	}
	c.mu.RUnlock()

	tex, err := LoadTexture(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.textures[path]; ok {
		tex = existing
	} else {
		c.textures[path] = tex
	}
	c.mu.Unlock()

	return tex, nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}
