package model

import (
	"errors"
	"image"
	"math"
)

// ErrQualityFloorReached marks a compress result that is still over budget at
// the lowest quality. The image itself is usable.
var ErrQualityFloorReached = errors.New("target size not reachable even at minimum quality")

// Dimensions is a requested output size in pixels. Zero means unset: the
// source's own dimension is used when an operation runs.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Resolve returns the effective dimensions for a source of the given size.
func (d Dimensions) Resolve(srcWidth, srcHeight int) Dimensions {
	out := d
	if out.Width == 0 {
		out.Width = srcWidth
	}
	if out.Height == 0 {
		out.Height = srcHeight
	}
	return out
}

// SourceImage is a decoded upload. It is never mutated; a new upload replaces it.
type SourceImage struct {
	Image  image.Image
	Width  int
	Height int
	Format string
}

// AspectRatio is width over height, captured from the natural dimensions.
func (s SourceImage) AspectRatio() float64 {
	if s.Height == 0 {
		return 0
	}
	return float64(s.Width) / float64(s.Height)
}

// EncodedImage is the result of a resize or compress run.
type EncodedImage struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
	Lossless bool
	// Quality is on the 0.0-1.0 scale, 0 for lossless output.
	Quality float64
	// SizeBytes is the real encoded length.
	SizeBytes int64
	// EstimatedBytes is the size the budget was checked against.
	EstimatedBytes float64
	TargetBytes    float64
	TargetReached  bool
	// Encodes counts how many times the raster was encoded.
	Encodes int
}

// Err reports ErrQualityFloorReached for an over-budget result, nil otherwise.
func (e EncodedImage) Err() error {
	if e.Lossless || e.TargetReached {
		return nil
	}
	return ErrQualityFloorReached
}

// EstimatedMB returns the estimated size in MB rounded to 2 decimals for display.
func (e EncodedImage) EstimatedMB() float64 {
	return RoundMB(e.EstimatedBytes)
}

// RoundMB converts bytes to MB, rounded to 2 decimals.
func RoundMB(b float64) float64 {
	return math.Round(b/(1024*1024)*100) / 100
}
