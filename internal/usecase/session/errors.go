package session

import (
	"errors"

	"github.com/fhuszti/resizer-ms-go/internal/optimiser"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoOutput        = errors.New("session has no output yet")
	ErrPresetNotFound  = errors.New("preset not found")
	ErrFileTooLarge    = errors.New("file too large")

	ErrDecodeFailure       = optimiser.ErrDecodeFailure
	ErrInvalidDimensions   = optimiser.ErrInvalidDimensions
	ErrInvalidTargetSize   = optimiser.ErrInvalidTargetSize
	ErrQualityFloorReached = optimiser.ErrQualityFloorReached
)

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)
