package mock

import (
	"io"

	"github.com/fhuszti/resizer-ms-go/internal/model"
)

// ImageOptimiser implements port.ImageOptimiser for tests.
type ImageOptimiser struct {
	DecodeOut   model.SourceImage
	ResizeOut   model.EncodedImage
	CompressOut model.EncodedImage

	DecodeErr   error
	ResizeErr   error
	CompressErr error

	DecodeCalled   bool
	ResizeCalled   bool
	CompressCalled bool

	GotTarget       model.Dimensions
	GotTargetSizeMB float64
}

func (m *ImageOptimiser) Decode(r io.Reader) (model.SourceImage, error) {
	m.DecodeCalled = true
	if m.DecodeErr != nil {
		return model.SourceImage{}, m.DecodeErr
	}
	return m.DecodeOut, nil
}

func (m *ImageOptimiser) Resize(src model.SourceImage, target model.Dimensions) (model.EncodedImage, error) {
	m.ResizeCalled = true
	m.GotTarget = target
	if m.ResizeErr != nil {
		return model.EncodedImage{}, m.ResizeErr
	}
	return m.ResizeOut, nil
}

func (m *ImageOptimiser) Compress(src model.SourceImage, target model.Dimensions, targetSizeMB float64) (model.EncodedImage, error) {
	m.CompressCalled = true
	m.GotTarget = target
	m.GotTargetSizeMB = targetSizeMB
	if m.CompressErr != nil {
		return model.EncodedImage{}, m.CompressErr
	}
	return m.CompressOut, nil
}
