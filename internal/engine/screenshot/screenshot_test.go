package screenshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRows is a 1x2 frame in GL order: bottom row red, top row blue.
var twoRows = []byte{
	255, 0, 0, 255,
	0, 0, 255, 255,
}

func TestFromGLFlips(t *testing.T) {
	img, err := FromGL(twoRows, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0), "top row")
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 1), "bottom row")
}

func TestFromGLSizeMismatch(t *testing.T) {
	_, err := FromGL(twoRows, 2, 2)
	assert.Error(t, err)

	_, err = FromGL(nil, 0, 0)
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := New(dir, "sandbox")
	c.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	path, err := c.Save(twoRows, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sandbox_2026-10-19_12-00-00.000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), b)
}
