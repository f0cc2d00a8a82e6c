package optimiser

import (
	"errors"

	"github.com/fhuszti/resizer-ms-go/internal/model"
)

var (
	ErrDecodeFailure       = errors.New("optimiser: file is not a decodable image")
	ErrInvalidDimensions   = errors.New("optimiser: invalid dimensions")
	ErrInvalidTargetSize   = errors.New("optimiser: target size must be a positive number of MB")
	ErrQualityFloorReached = model.ErrQualityFloorReached
	ErrUnknownFormat       = errors.New("optimiser: unknown output format")
)
