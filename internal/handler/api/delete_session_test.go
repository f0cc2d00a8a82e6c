package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/resizer-ms-go/internal/mock"
	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

func TestDeleteSessionHandler(t *testing.T) {
	tests := []struct {
		name          string
		ctxID         *uuid.UUID
		svcErr        error
		wantStatus    int
		wantSvcCalled bool
		wantBody      string
	}{
		{"happy path", &testID, nil, http.StatusNoContent, true, ""},
		{"unknown session", &testID, session.ErrSessionNotFound, http.StatusNotFound, true, "Session not found"},
		{"service error", &testID, errors.New("boom"), http.StatusInternalServerError, true, "Failed to delete session"},
		{"missing ID", nil, nil, http.StatusBadRequest, false, "ID is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockSessionDeleter{Err: tc.svcErr}
			rec := httptest.NewRecorder()

			DeleteSessionHandler(svc).ServeHTTP(rec, newRequest(http.MethodDelete, "/sessions/x", nil, tc.ctxID))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if svc.Called != tc.wantSvcCalled {
				t.Fatalf("Called = %v; want %v", svc.Called, tc.wantSvcCalled)
			}
			if tc.wantSvcCalled && svc.GotID != testID {
				t.Errorf("GotID = %s", svc.GotID)
			}
			if tc.wantBody != "" && !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}
