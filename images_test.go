package mintpaper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestProcessImageResizesWideImages(t *testing.T) {
	img, data, err := processImage(encodePNG(t, 1600, 400), "My Holiday Photo.PNG")
	require.NoError(t, err)

	assert.Equal(t, "my-holiday-photo.jpg", img.Filename)
	assert.Equal(t, "My Holiday Photo.PNG", img.OriginalName)
	assert.Equal(t, 800, img.Width)
	assert.Equal(t, 200, img.Height)
	assert.Equal(t, len(data), img.Size)

	decoded, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 800, decoded.Bounds().Dx())
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	img, _, err := processImage(encodePNG(t, 120, 90), "!!!.png")
	require.NoError(t, err)
	assert.Equal(t, "image.jpg", img.Filename)
	assert.Equal(t, 120, img.Width)
	assert.Equal(t, 90, img.Height)
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	_, _, err := processImage(strings.NewReader("not an image"), "x.png")
	assert.Error(t, err)
}

func TestEnsureUniqueFilename(t *testing.T) {
	a := &App{Store: setupTestStore(t), staticDir: t.TempDir()}
	require.NoError(t, a.Store.SaveImage(Image{Filename: "cat.jpg", OriginalName: "cat.png", UploadedAt: "2024-01-01T00:00:00Z"}))
	require.NoError(t, a.Store.SaveImage(Image{Filename: "cat-2.jpg", OriginalName: "cat.png", UploadedAt: "2024-01-02T00:00:00Z"}))

	img := Image{Filename: "cat.jpg"}
	require.NoError(t, a.ensureUniqueFilename(&img))
	assert.Equal(t, "cat-3.jpg", img.Filename)

	fresh := Image{Filename: "dog.jpg"}
	require.NoError(t, a.ensureUniqueFilename(&fresh))
	assert.Equal(t, "dog.jpg", fresh.Filename)
}
