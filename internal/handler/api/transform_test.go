package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/resizer-ms-go/internal/mock"
	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
)

func transformed(op string, quality float64, reached bool) port.TransformOutput {
	sess := sampleSession()
	sess.TargetWidth, sess.TargetHeight = 300, 400
	sess.Output = &model.Output{
		ObjectKey:      "sessions/" + testID.String() + "/output.jpg",
		MimeType:       "image/jpeg",
		Operation:      op,
		Width:          300,
		Height:         400,
		Quality:        quality,
		SizeBytes:      40000,
		EstimatedBytes: 53340,
		TargetReached:  reached,
	}
	img := model.EncodedImage{MimeType: "image/jpeg", Width: 300, Height: 400, Quality: quality, TargetReached: reached}
	out := port.TransformOutput{Session: sess, Image: img}
	if op == model.OperationCompress {
		out.Warning = img.Err()
	}
	return out
}

func TestResizeHandler(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{"happy path", nil, http.StatusOK, `"operation":"resize"`},
		{"unknown session", session.ErrSessionNotFound, http.StatusNotFound, "Session not found"},
		{"bad dimensions", fmt.Errorf("%w: 20000x1", session.ErrInvalidDimensions), http.StatusUnprocessableEntity, "Invalid dimensions"},
		{"source gone", session.ErrObjectNotFound, http.StatusNotFound, "Stored image not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockSessionTransformer{Out: transformed(model.OperationResize, 0, true), Err: tc.svcErr}
			req := newRequest(http.MethodPost, "/sessions/x/resize", nil, &testID)
			rec := httptest.NewRecorder()

			ResizeHandler(svc).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if !svc.ResizeCalled || svc.GotID != testID {
				t.Fatalf("resize called=%v id=%s", svc.ResizeCalled, svc.GotID)
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestResizeHandler_MissingID(t *testing.T) {
	svc := &mock.MockSessionTransformer{}
	rec := httptest.NewRecorder()

	ResizeHandler(svc).ServeHTTP(rec, newRequest(http.MethodPost, "/sessions/x/resize", nil, nil))

	if rec.Code != http.StatusBadRequest || svc.ResizeCalled {
		t.Fatalf("status = %d called=%v", rec.Code, svc.ResizeCalled)
	}
}

func TestCompressHandler(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		out           port.TransformOutput
		svcErr        error
		wantStatus    int
		wantSvcCalled bool
		wantTarget    float64
		wantWarning   bool
		wantBody      string
	}{
		{
			name:          "target reached",
			body:          `{"target_size_mb":0.5}`,
			out:           transformed(model.OperationCompress, 0.9, true),
			wantStatus:    http.StatusOK,
			wantSvcCalled: true,
			wantTarget:    0.5,
		},
		{
			name:          "floor reached returns output with warning",
			body:          `{"target_size_mb":0.001}`,
			out:           transformed(model.OperationCompress, 0.1, false),
			wantStatus:    http.StatusOK,
			wantSvcCalled: true,
			wantTarget:    0.001,
			wantWarning:   true,
		},
		{
			name:       "missing target",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"target_size_mb":"required"`,
		},
		{
			name:       "negative target",
			body:       `{"target_size_mb":-2}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"target_size_mb":"gt"`,
		},
		{
			name:       "not a number",
			body:       `{"target_size_mb":"big"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid request payload",
		},
		{
			name:          "undecodable source",
			body:          `{"target_size_mb":1}`,
			svcErr:        session.ErrDecodeFailure,
			wantStatus:    http.StatusUnprocessableEntity,
			wantSvcCalled: true,
			wantTarget:    1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockSessionTransformer{Out: tc.out, Err: tc.svcErr}
			req := newRequest(http.MethodPost, "/sessions/x/compress", strings.NewReader(tc.body), &testID)
			rec := httptest.NewRecorder()

			CompressHandler(svc).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if svc.CompressCalled != tc.wantSvcCalled {
				t.Fatalf("CompressCalled = %v; want %v", svc.CompressCalled, tc.wantSvcCalled)
			}
			if tc.wantSvcCalled && svc.GotCompress.TargetSizeMB != tc.wantTarget {
				t.Errorf("target = %v; want %v", svc.GotCompress.TargetSizeMB, tc.wantTarget)
			}
			if tc.wantBody != "" && !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tc.wantBody)
			}
			if rec.Code != http.StatusOK {
				return
			}

			var resp TransformResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if resp.Output == nil || resp.Output.Filename != "resized-image.jpg" {
				t.Fatalf("unexpected output: %+v", resp.Output)
			}
			if resp.Session == nil || !resp.Session.HasOutput {
				t.Errorf("session view should report an output: %+v", resp.Session)
			}
			if (resp.Warning != "") != tc.wantWarning {
				t.Errorf("warning = %q; want present=%v", resp.Warning, tc.wantWarning)
			}
			if tc.wantWarning && resp.Output.TargetReached {
				t.Error("target_reached should be false alongside a warning")
			}
		})
	}
}
