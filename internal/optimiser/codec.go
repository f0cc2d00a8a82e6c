package optimiser

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/chai2010/webp"
)

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatWebP = "webp"
)

type jpegEncoder struct{}

func NewJPEGEncoder() LossyEncoder { return jpegEncoder{} }

func (jpegEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

func (jpegEncoder) MimeType() string { return "image/jpeg" }

type webpEncoder struct{}

func NewWebPEncoder() LossyEncoder { return webpEncoder{} }

func (webpEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
}

func (webpEncoder) MimeType() string { return "image/webp" }

type pngEncoder struct{}

func NewPNGEncoder() LosslessEncoder { return pngEncoder{} }

func (pngEncoder) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func (pngEncoder) MimeType() string { return "image/png" }

type webpLosslessEncoder struct{}

func NewWebPLosslessEncoder() LosslessEncoder { return webpLosslessEncoder{} }

func (webpLosslessEncoder) Encode(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: true})
}

func (webpLosslessEncoder) MimeType() string { return "image/webp" }

// NewLossyEncoder picks the compress encoder: jpeg (default) or webp.
func NewLossyEncoder(format string) (LossyEncoder, error) {
	switch strings.ToLower(format) {
	case "", FormatJPEG, "jpg":
		return NewJPEGEncoder(), nil
	case FormatWebP:
		return NewWebPEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: lossy %q", ErrUnknownFormat, format)
	}
}

// NewLosslessEncoder picks the resize encoder: png (default) or webp.
func NewLosslessEncoder(format string) (LosslessEncoder, error) {
	switch strings.ToLower(format) {
	case "", FormatPNG:
		return NewPNGEncoder(), nil
	case FormatWebP:
		return NewWebPLosslessEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: lossless %q", ErrUnknownFormat, format)
	}
}
