package export

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"

	// Originals are mostly JPEG but legacy albums contain the odd GIF/PNG
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// CroppedThumbnail builds a thumbnail by cropping a maximal region from
// the center of the original with the same aspect ratio as the target,
// then scaling. The result is always exactly the requested size with no
// aspect ratio distortion; two edges (top/bottom or left/right) may be
// trimmed off.
func CroppedThumbnail(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	ow, oh := bounds.Dx(), bounds.Dy()

	targetRatio := float64(width) / float64(height)
	originalRatio := float64(ow) / float64(oh)

	crop := bounds
	if targetRatio > originalRatio {
		// Image is too tall: take some off the top and bottom
		cropHeight := int(float64(ow) / targetRatio)
		top := bounds.Min.Y + (oh-cropHeight)/2
		crop = image.Rect(bounds.Min.X, top, bounds.Max.X, top+cropHeight)
	} else if targetRatio < originalRatio {
		// Image is too wide: take some off the sides
		cropWidth := int(float64(oh) * targetRatio)
		left := bounds.Min.X + (ow-cropWidth)/2
		crop = image.Rect(left, bounds.Min.Y, left+cropWidth, bounds.Max.Y)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)
	return dst
}

// writeThumbnail decodes srcPath, builds a size x size thumbnail, and
// writes it as JPEG to dstPath.
func writeThumbnail(srcPath, dstPath string, size int) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open original %s: %w", srcPath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", srcPath, err)
	}

	thumb := CroppedThumbnail(img, size, size)

	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail %s: %w", dstPath, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to encode thumbnail %s: %w", dstPath, err)
	}
	return nil
}
