package optimiser

import (
	"image"
	"io"
)

// LossyEncoder writes a raster at a quality level in [1, 100].
type LossyEncoder interface {
	Encode(w io.Writer, img image.Image, quality int) error
	MimeType() string
}

// LosslessEncoder writes a raster without loss.
type LosslessEncoder interface {
	Encode(w io.Writer, img image.Image) error
	MimeType() string
}

// SizeEstimator turns an encoded length into the size compared against a budget.
type SizeEstimator func(mimeType string, n int) float64
