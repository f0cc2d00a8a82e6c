package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

const (
	OperationResize   = "resize"
	OperationCompress = "compress"
)

// Session is the interactive state of one resizer: the uploaded source, the
// form fields and the latest produced output.
type Session struct {
	ID               uuid.UUID `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	Bucket           string    `json:"bucket"`
	SourceKey        string    `json:"source_key"`
	SourceMimeType   string    `json:"source_mime_type"`
	SourceWidth      int       `json:"source_width"`
	SourceHeight     int       `json:"source_height"`
	AspectRatio      float64   `json:"aspect_ratio"`
	TargetWidth      int       `json:"target_width"`
	TargetHeight     int       `json:"target_height"`
	LockRatio        bool      `json:"lock_ratio"`
	Output           *Output   `json:"output"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Output describes the stored result of the last resize or compress action.
type Output struct {
	ObjectKey      string  `json:"object_key"`
	MimeType       string  `json:"mime_type"`
	Operation      string  `json:"operation"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Quality        float64 `json:"quality,omitempty"`
	SizeBytes      int64   `json:"size_bytes"`
	EstimatedBytes float64 `json:"estimated_bytes"`
	TargetSizeMB   float64 `json:"target_size_mb,omitempty"`
	TargetReached  bool    `json:"target_reached"`
}

func (o Output) Value() (driver.Value, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal Output: %w", err)
	}
	return b, nil
}

func (o *Output) Scan(src interface{}) error {
	if src == nil {
		*o = Output{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Output.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, o); err != nil {
		return fmt.Errorf("unmarshal Output: %w", err)
	}
	return nil
}

// Targets returns the form dimensions as entered, zero meaning unset.
func (s *Session) Targets() Dimensions {
	return Dimensions{Width: s.TargetWidth, Height: s.TargetHeight}
}

// SetSource replaces the uploaded image. The ratio is re-captured and the
// previous output no longer applies.
func (s *Session) SetSource(key, mimeType, filename string, width, height int) {
	s.SourceKey = key
	s.SourceMimeType = mimeType
	s.OriginalFilename = filename
	s.SourceWidth = width
	s.SourceHeight = height
	s.AspectRatio = SourceImage{Width: width, Height: height}.AspectRatio()
	s.Output = nil
}

// SetLock toggles the aspect-ratio lock. Existing fields are left untouched.
func (s *Session) SetLock(locked bool) {
	s.LockRatio = locked
}

// SetWidth updates the width. With the lock on and a height already entered,
// the height follows the captured ratio.
func (s *Session) SetWidth(w int) {
	s.TargetWidth = w
	if s.LockRatio && s.TargetHeight != 0 && s.AspectRatio > 0 {
		s.TargetHeight = roundHalfUp(float64(w) / s.AspectRatio)
	}
}

// SetHeight is the mirror of SetWidth.
func (s *Session) SetHeight(h int) {
	s.TargetHeight = h
	if s.LockRatio && s.TargetWidth != 0 && s.AspectRatio > 0 {
		s.TargetWidth = roundHalfUp(float64(h) * s.AspectRatio)
	}
}

// ApplyPreset sets both fields at once, bypassing the lock coupling.
func (s *Session) ApplyPreset(p Preset) {
	s.TargetWidth = p.Width
	s.TargetHeight = p.Height
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
