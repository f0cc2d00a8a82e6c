package port

import (
	"context"
	"io"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// SessionUploader creates sessions from uploads and swaps their source.
type SessionUploader interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (*model.Session, error)
	ReplaceSource(ctx context.Context, in ReplaceSourceInput) (*model.Session, error)
}
type CreateSessionInput struct {
	Filename string
	Reader   io.Reader
}
type ReplaceSourceInput struct {
	ID       uuid.UUID
	Filename string
	Reader   io.Reader
}

// FormEditor edits the width/height/lock fields of a session.
type FormEditor interface {
	UpdateForm(ctx context.Context, in UpdateFormInput) (*model.Session, error)
	ApplyPreset(ctx context.Context, id uuid.UUID, slug string) (*model.Session, error)
}

// UpdateFormInput carries the edited fields; nil leaves a field untouched.
type UpdateFormInput struct {
	ID        uuid.UUID
	Width     *int
	Height    *int
	LockRatio *bool
}

// SessionTransformer runs resize and compress on a session's source.
type SessionTransformer interface {
	Resize(ctx context.Context, id uuid.UUID) (TransformOutput, error)
	Compress(ctx context.Context, in CompressInput) (TransformOutput, error)
}
type CompressInput struct {
	ID           uuid.UUID
	TargetSizeMB float64
}
type TransformOutput struct {
	Session *model.Session
	Image   model.EncodedImage
	// Warning is set when the result is usable but missed its target.
	Warning error
}

// SessionGetter returns the public view of a session with signed links.
type SessionGetter interface {
	GetSession(ctx context.Context, id uuid.UUID) (*GetSessionOutput, error)
	DownloadLink(ctx context.Context, id uuid.UUID) (string, error)
}

type SourceOutput struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	MimeType    string  `json:"mime_type"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// FormOutput mirrors the widget inputs; unset fields are null.
type FormOutput struct {
	Width     *int `json:"width"`
	Height    *int `json:"height"`
	LockRatio bool `json:"lock_ratio"`
}

type ResultOutput struct {
	Operation       string  `json:"operation"`
	MimeType        string  `json:"mime_type"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Quality         float64 `json:"quality,omitempty"`
	SizeBytes       int64   `json:"size_bytes"`
	EstimatedSizeMB float64 `json:"estimated_size_mb"`
	TargetSizeMB    float64 `json:"target_size_mb,omitempty"`
	TargetReached   bool    `json:"target_reached"`
	Filename        string  `json:"filename"`
}

type GetSessionOutput struct {
	ID               uuid.UUID     `json:"id"`
	OriginalFilename string        `json:"original_filename"`
	Source           SourceOutput  `json:"source"`
	Form             FormOutput    `json:"form"`
	HasOutput        bool          `json:"has_output"`
	Output           *ResultOutput `json:"output,omitempty"`
	PreviewURL       string        `json:"preview_url"`
	DownloadURL      string        `json:"download_url,omitempty"`
	ValidUntil       time.Time     `json:"valid_until"`
}

// SessionDeleter removes a session with its objects.
type SessionDeleter interface {
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

// BacklogPurger schedules removal of stale sessions.
type BacklogPurger interface {
	PurgeBacklog(ctx context.Context) error
}
