package export

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func TestCroppedThumbnail(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"wide original", 600, 200},
		{"tall original", 200, 600},
		{"square original", 300, 300},
		{"smaller than target", 40, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb := CroppedThumbnail(solidImage(tt.w, tt.h), 150, 150)
			bounds := thumb.Bounds()
			assert.Equal(t, 150, bounds.Dx(), "thumbnail is exactly the requested width")
			assert.Equal(t, 150, bounds.Dy(), "thumbnail is exactly the requested height")
		})
	}
}
