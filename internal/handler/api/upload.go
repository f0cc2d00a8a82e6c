package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/fhuszti/resizer-ms-go/internal/api_context"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
)

const (
	uploadField = "file"
	// room for multipart boundaries and part headers
	multipartOverhead = 1 << 20
)

var errMissingFile = errors.New(`multipart field "file" is missing`)

// UploadRequest describes the file part of an upload.
type UploadRequest struct {
	Filename    string `json:"filename"     validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"omitempty,imagemime"`
}

// CreateSessionHandler opens a session from a multipart "file" upload.
func CreateSessionHandler(svc port.SessionUploader, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		part, ok := openUpload(w, r, maxSize)
		if !ok {
			return
		}
		defer part.Close()

		sess, err := svc.CreateSession(r.Context(), port.CreateSessionInput{
			Filename: part.FileName(),
			Reader:   part,
		})
		if err != nil {
			writeSessionError(w, err, "Could not create session")
			return
		}

		RespondJSON(w, http.StatusCreated, session.NewSessionView(sess))
		logger.Infof(r.Context(), "✅  Created session #%s", sess.ID)
	}
}

// ReplaceSourceHandler swaps the uploaded image of an existing session.
func ReplaceSourceHandler(svc port.SessionUploader, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		part, ok := openUpload(w, r, maxSize)
		if !ok {
			return
		}
		defer part.Close()

		sess, err := svc.ReplaceSource(r.Context(), port.ReplaceSourceInput{
			ID:       id,
			Filename: part.FileName(),
			Reader:   part,
		})
		if err != nil {
			writeSessionError(w, err, "Could not replace source image")
			return
		}

		RespondJSON(w, http.StatusOK, session.NewSessionView(sess))
		logger.Infof(r.Context(), "✅  Replaced source of session #%s", id)
	}
}

// openUpload streams the request body up to the "file" part and validates
// its headers. On failure the response is already written.
func openUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (*multipart.Part, bool) {
	if maxSize <= 0 {
		maxSize = session.DefaultMaxUploadSize
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	part, err := filePart(r)
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			WriteError(w, http.StatusRequestEntityTooLarge, "File too large", err)
		case errors.Is(err, errMissingFile):
			WriteError(w, http.StatusBadRequest, "file is required", err)
		default:
			WriteError(w, http.StatusBadRequest, "invalid multipart payload", err)
		}
		return nil, false
	}

	req := UploadRequest{
		Filename:    part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
	}
	// generic types carry no information; the content is sniffed later
	if req.ContentType == "application/octet-stream" {
		req.ContentType = ""
	}
	if !validate(w, r, req) {
		_ = part.Close()
		return nil, false
	}
	return part, true
}

func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errMissingFile
		}
		if err != nil {
			return nil, err
		}
		if p.FormName() == uploadField {
			return p, nil
		}
		_ = p.Close()
	}
}
