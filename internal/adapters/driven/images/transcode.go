package images

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/bloglab/notion-sync/internal/logger"
)

const (
	// maxWidth caps image width; taller-than-wide images are never
	// upscaled either.
	maxWidth = 1920

	webpQuality = 85
)

// transcodeWebP resizes data to at most maxWidth and encodes it as
// WebP. When the bytes cannot be decoded or encoded, the original
// bytes are returned untouched so the upload still happens.
func transcodeWebP(data []byte) ([]byte, string) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Warn("Image decode failed, uploading original bytes: %v", err)
		return data, "application/octet-stream"
	}

	src = resizeToWidth(src, maxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		logger.Warn("WebP encode failed, uploading original bytes: %v", err)
		return data, "application/octet-stream"
	}

	return buf.Bytes(), "image/webp"
}

// resizeToWidth scales img down to width preserving aspect ratio.
// Images already narrower are returned as-is.
func resizeToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= width {
		return img
	}

	height := bounds.Dy() * width / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
