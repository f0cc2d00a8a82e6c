package optimiser

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Quality is tracked in whole percent so the descent never drifts.
const (
	startQuality = 90
	minQuality   = 10
	qualityStep  = 5

	DefaultMaxDimension = 10000
)

type Optimiser struct {
	lossy    LossyEncoder
	lossless LosslessEncoder
	estimate SizeEstimator
	maxDim   int
	scaler   draw.Scaler
}

// compile-time check: *Optimiser must satisfy port.ImageOptimiser
var _ port.ImageOptimiser = (*Optimiser)(nil)

func NewOptimiser(lossy LossyEncoder, lossless LosslessEncoder, estimate SizeEstimator, maxDim int) *Optimiser {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	if estimate == nil {
		estimate = EstimateDataURLSize
	}
	return &Optimiser{
		lossy:    lossy,
		lossless: lossless,
		estimate: estimate,
		maxDim:   maxDim,
		scaler:   draw.CatmullRom,
	}
}

// Decode reads a whole image and reports its natural dimensions. The header
// is checked first, so a raster larger than the configured maximum is
// rejected before any pixel is allocated.
func (o *Optimiser) Decode(r io.Reader) (model.SourceImage, error) {
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return model.SourceImage{}, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return model.SourceImage{}, fmt.Errorf("%w: empty raster", ErrDecodeFailure)
	}
	if cfg.Width > o.maxDim || cfg.Height > o.maxDim {
		return model.SourceImage{}, fmt.Errorf("%w: source is %dx%d (max %d)", ErrInvalidDimensions, cfg.Width, cfg.Height, o.maxDim)
	}

	img, format, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return model.SourceImage{}, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	b := img.Bounds()
	return model.SourceImage{
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: format,
	}, nil
}

// Resize draws the source stretched onto a W×H surface and encodes it without
// loss. Unset target dimensions fall back to the source's.
func (o *Optimiser) Resize(src model.SourceImage, target model.Dimensions) (model.EncodedImage, error) {
	dims, err := o.resolve(src, target)
	if err != nil {
		return model.EncodedImage{}, err
	}
	canvas := o.draw(src, dims)

	buf := &bytes.Buffer{}
	if err := o.lossless.Encode(buf, canvas); err != nil {
		return model.EncodedImage{}, fmt.Errorf("optimiser: failed to encode %s: %w", o.lossless.MimeType(), err)
	}

	mime := o.lossless.MimeType()
	return model.EncodedImage{
		Data:           buf.Bytes(),
		MimeType:       mime,
		Width:          dims.Width,
		Height:         dims.Height,
		Lossless:       true,
		SizeBytes:      int64(buf.Len()),
		EstimatedBytes: o.estimate(mime, buf.Len()),
		TargetReached:  true,
		Encodes:        1,
	}, nil
}

// Compress draws the source like Resize, then lowers the lossy quality from
// 0.90 in 0.05 steps until the measured size fits targetSizeMB or 0.10 is hit.
// Over-budget output at the floor is still returned with TargetReached=false.
func (o *Optimiser) Compress(src model.SourceImage, target model.Dimensions, targetSizeMB float64) (model.EncodedImage, error) {
	if math.IsNaN(targetSizeMB) || math.IsInf(targetSizeMB, 0) || targetSizeMB <= 0 {
		return model.EncodedImage{}, ErrInvalidTargetSize
	}
	dims, err := o.resolve(src, target)
	if err != nil {
		return model.EncodedImage{}, err
	}
	canvas := o.draw(src, dims)
	targetBytes := targetSizeMB * 1024 * 1024
	mime := o.lossy.MimeType()

	quality := startQuality
	buf := &bytes.Buffer{}
	encodes := 0
	encode := func() (float64, error) {
		buf.Reset()
		encodes++
		if err := o.lossy.Encode(buf, canvas, quality); err != nil {
			return 0, fmt.Errorf("optimiser: failed to encode %s at quality %d: %w", mime, quality, err)
		}
		return o.estimate(mime, buf.Len()), nil
	}

	size, err := encode()
	if err != nil {
		return model.EncodedImage{}, err
	}
	for size > targetBytes && quality > minQuality {
		quality -= qualityStep
		if size, err = encode(); err != nil {
			return model.EncodedImage{}, err
		}
	}

	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	return model.EncodedImage{
		Data:           data,
		MimeType:       mime,
		Width:          dims.Width,
		Height:         dims.Height,
		Quality:        float64(quality) / 100,
		SizeBytes:      int64(len(data)),
		EstimatedBytes: size,
		TargetBytes:    targetBytes,
		TargetReached:  size <= targetBytes,
		Encodes:        encodes,
	}, nil
}

func (o *Optimiser) resolve(src model.SourceImage, target model.Dimensions) (model.Dimensions, error) {
	if target.Width < 0 || target.Height < 0 {
		return model.Dimensions{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, target.Width, target.Height)
	}
	dims := target.Resolve(src.Width, src.Height)
	if dims.Width <= 0 || dims.Height <= 0 || dims.Width > o.maxDim || dims.Height > o.maxDim {
		return model.Dimensions{}, fmt.Errorf("%w: %dx%d (max %d)", ErrInvalidDimensions, dims.Width, dims.Height, o.maxDim)
	}
	return dims, nil
}

func (o *Optimiser) draw(src model.SourceImage, dims model.Dimensions) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))
	o.scaler.Scale(dst, dst.Bounds(), src.Image, src.Image.Bounds(), draw.Src, nil)
	return dst
}
