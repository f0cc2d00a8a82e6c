package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/api_context"
	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

var testID = uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

func sampleSession() *model.Session {
	s := &model.Session{
		ID:        testID,
		Bucket:    "sessions",
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now(),
	}
	s.SetSource("sessions/"+testID.String()+"/source.jpg", "image/jpeg", "photo.jpg", 1000, 800)
	return s
}

// newRequest builds a request, with the session id in context unless id is nil.
func newRequest(method, target string, body io.Reader, id *uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if id != nil {
		req = req.WithContext(api_context.WithSessionID(req.Context(), *id))
	}
	return req
}

// multipartBody writes a single part named field with the given file name
// and content type.
func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return buf, mw.FormDataContentType()
}
