package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp decoding for uploads
)

const thumbnailMaxDim = 256

// Thumbnail decodes an image and scales it down so its longest side is at
// most 256px, preserving aspect ratio. The result is JPEG-encoded. Images
// already within bounds are re-encoded without scaling.
func Thumbnail(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= thumbnailMaxDim && h <= thumbnailMaxDim {
		return encodeJPEG(src)
	}

	var tw, th int
	if w >= h {
		tw = thumbnailMaxDim
		th = h * thumbnailMaxDim / w
	} else {
		th = thumbnailMaxDim
		tw = w * thumbnailMaxDim / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return encodeJPEG(dst)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
