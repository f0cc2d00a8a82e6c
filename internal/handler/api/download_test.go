package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/resizer-ms-go/internal/mock"
	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

func TestDownloadHandler(t *testing.T) {
	const link = "https://example.com/sessions/output.png?X-Amz-Signature=abc"

	tests := []struct {
		name         string
		ctxID        *uuid.UUID
		linkErr      error
		wantStatus   int
		wantLocation string
	}{
		{"redirects to signed link", &testID, nil, http.StatusFound, link},
		{"no output yet", &testID, session.ErrNoOutput, http.StatusNotFound, ""},
		{"unknown session", &testID, session.ErrSessionNotFound, http.StatusNotFound, ""},
		{"signing failure", &testID, errors.New("minio down"), http.StatusInternalServerError, ""},
		{"missing ID", nil, nil, http.StatusBadRequest, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockSessionGetter{LinkOut: link, LinkErr: tc.linkErr}
			rec := httptest.NewRecorder()

			DownloadHandler(svc).ServeHTTP(rec, newRequest(http.MethodGet, "/sessions/x/download", nil, tc.ctxID))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if got := rec.Header().Get("Location"); got != tc.wantLocation {
				t.Errorf("Location = %q; want %q", got, tc.wantLocation)
			}
			if svc.LinkCalled != (tc.ctxID != nil) {
				t.Errorf("LinkCalled = %v", svc.LinkCalled)
			}
		})
	}
}
