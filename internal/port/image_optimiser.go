package port

import (
	"io"

	"github.com/fhuszti/resizer-ms-go/internal/model"
)

// ImageOptimiser decodes uploads and runs the two image transformations.
type ImageOptimiser interface {
	Decode(r io.Reader) (model.SourceImage, error)
	Resize(src model.SourceImage, target model.Dimensions) (model.EncodedImage, error)
	Compress(src model.SourceImage, target model.Dimensions, targetSizeMB float64) (model.EncodedImage, error)
}
