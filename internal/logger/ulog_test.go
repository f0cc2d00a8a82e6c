package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fhuszti/resizer-ms-go/internal/api_context"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

func TestRequestHandlerAttrs(t *testing.T) {
	id := uuid.NewUUID()
	tests := []struct {
		name        string
		ctx         context.Context
		wantUID     string
		wantSession string
	}{
		{"outside a request", context.Background(), "system", ""},
		{"authenticated", api_context.WithAuth(context.Background(), "user-1", nil), "user-1", ""},
		{"session route", api_context.WithSessionID(context.Background(), id), "system", id.String()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(requestHandler{next: newHandler(&buf, options{level: slog.LevelInfo})})
			l.InfoContext(tc.ctx, "hello")

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("invalid JSON record %q: %v", buf.String(), err)
			}
			if rec["uid"] != tc.wantUID {
				t.Errorf("uid = %v, want %q", rec["uid"], tc.wantUID)
			}
			got, _ := rec["session"].(string)
			if got != tc.wantSession {
				t.Errorf("session = %q, want %q", got, tc.wantSession)
			}
		})
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("LOG_SOURCE", "true")

	o := optionsFromEnv()
	if !o.text || o.level != slog.LevelWarn || !o.source {
		t.Errorf("unexpected options: %+v", o)
	}

	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_LEVEL", "bogus")
	t.Setenv("LOG_SOURCE", "nope")
	o = optionsFromEnv()
	if o.text || o.level != slog.LevelInfo || o.source {
		t.Errorf("unexpected defaults: %+v", o)
	}
}
