package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/storefront/backend/internal/domain/catalogsheet"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// EmbedFormat is the format every normalised image is re-encoded to
const EmbedFormat = "JPG"

// ErrEmptyImage is returned for zero-length input or zero-area images
var ErrEmptyImage = errors.New("empty image")

// NormalizeOptions controls how a decoded image is prepared for embedding
type NormalizeOptions struct {
	// MaxDimension bounds the longest side in pixels; 0 keeps the source size
	MaxDimension int
	Quality      int
	// Matte replaces transparency since JPEG has no alpha channel
	Matte color.Color
}

// Normalize decodes any supported raster (jpeg, png, gif, webp, bmp),
// flattens it onto the matte, downscales it and re-encodes it as JPEG.
func Normalize(data []byte, opts NormalizeOptions) (*catalogsheet.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	w, h := fitWithin(b.Dx(), b.Dy(), opts.MaxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	matte := opts.Matte
	if matte == nil {
		matte = color.White
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(matte), image.Point{}, draw.Src)

	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Over)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode %s as jpeg: %w", format, err)
	}

	return &catalogsheet.Image{
		Data:   buf.Bytes(),
		Format: EmbedFormat,
		Width:  w,
		Height: h,
	}, nil
}

// fitWithin scales w×h so the longest side is at most limit, keeping the
// aspect ratio and never upscaling.
func fitWithin(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		nh := h * limit / w
		if nh < 1 {
			nh = 1
		}
		return limit, nh
	}
	nw := w * limit / h
	if nw < 1 {
		nw = 1
	}
	return nw, limit
}
