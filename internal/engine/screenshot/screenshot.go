// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capture writes frames into a directory with timestamped names.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a capture writing to dir. An empty dir means the working directory.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// Save writes bottom-up RGBA pixels, as returned by glReadPixels, to a PNG
// and returns its path.
func (c *Capture) Save(pixels []byte, width, height int) (string, error) {
	img, err := FromGL(pixels, width, height)
	if err != nil {
		return "", err
	}

	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := c.filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

// FromGL converts bottom-up RGBA rows into a top-down image.
func FromGL(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

func (c *Capture) filename() string {
	// Millisecond precision so captures in the same second do not collide
	name := fmt.Sprintf("%s_%s.png", c.prefix, c.now().Format("2006-01-02_15-04-05.000"))
	if c.dir != "" {
		return filepath.Join(c.dir, name)
	}
	return name
}
