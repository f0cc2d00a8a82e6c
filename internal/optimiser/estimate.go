package optimiser

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	EstimatorDataURL = "estimate"
	EstimatorExact   = "exact"

	// dataURLFactor undoes base64's 4/3 expansion of a data URL length.
	dataURLFactor = 0.75
)

// EstimateDataURLSize returns the length of the base64 data URL for n encoded
// bytes multiplied by 0.75. Close to, but never exactly, the real size.
func EstimateDataURLSize(mimeType string, n int) float64 {
	prefix := len("data:" + mimeType + ";base64,")
	return float64(prefix+base64.StdEncoding.EncodedLen(n)) * dataURLFactor
}

// ExactSize returns the real byte length.
func ExactSize(_ string, n int) float64 {
	return float64(n)
}

// NewSizeEstimator maps the SIZE_ESTIMATOR setting to an estimator.
func NewSizeEstimator(name string) (SizeEstimator, error) {
	switch strings.ToLower(name) {
	case "", EstimatorDataURL:
		return EstimateDataURLSize, nil
	case EstimatorExact:
		return ExactSize, nil
	default:
		return nil, fmt.Errorf("optimiser: unknown size estimator %q", name)
	}
}
