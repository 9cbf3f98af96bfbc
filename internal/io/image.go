package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageService prepares cover art for embedding in MP3 files.
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService encoding JPEG at quality 90.
func NewImageService() *ImageService {
	return &ImageService{quality: 90}
}

// PrepareCover decodes a thumbnail, crops it to a centered square and
// scales it to at most maxSize pixels per side.
//
// YouTube thumbnails are 16:9 with letterbox bars, so the square crop keeps
// the picture and drops the bars. The result is JPEG-encoded.
//
// Example:
//
//	// A 1280x720 thumbnail becomes a 500x500 cover
//	cover, err := svc.PrepareCover(ctx, data, 500)
func (s *ImageService) PrepareCover(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	src := squareCrop(img.Bounds())
	side := src.Dx()
	if maxSize > 0 && side > maxSize {
		side = maxSize
	}

	// Catmull-Rom gives the best quality for downscaling
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// squareCrop returns the largest centered square inside b.
func squareCrop(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w > h {
		x := b.Min.X + (w-h)/2
		return image.Rect(x, b.Min.Y, x+h, b.Max.Y)
	}
	y := b.Min.Y + (h-w)/2
	return image.Rect(b.Min.X, y, b.Max.X, y+w)
}
