package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/fhuszti/resizer-ms-go/internal/handler/api"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/test/testutil"
)

var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
}

func do(t *testing.T, method, url, contentType string, body io.Reader, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, wantStatus int, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != wantStatus {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d; want %d (body: %s)", resp.StatusCode, wantStatus, b)
	}
	if out == nil {
		return
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func uploadBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestSessionFlowE2E(t *testing.T) {
	testDB, err := testutil.SetupMigratedDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer func() { _ = testDB.Cleanup() }()

	tb, err := testutil.SetupTestBucket(minioCfg)
	if err != nil {
		t.Fatalf("setup bucket: %v", err)
	}
	defer func() { _ = tb.Cleanup() }()

	srv := testutil.NewAPIServer(t, testDB.DB, minioCfg, tb.Name, redisAddr)

	// upload
	body, ct := uploadBody(t, "photo.jpg", testutil.GenerateNoiseJPEG(t, 1000, 800))
	var created port.GetSessionOutput
	decode(t, do(t, http.MethodPost, srv.URL+"/sessions", ct, body, nil), http.StatusCreated, &created)
	if created.Source.Width != 1000 || created.Source.Height != 800 || created.Source.AspectRatio != 1.25 {
		t.Fatalf("unexpected source: %+v", created.Source)
	}
	if created.HasOutput || created.Form.Width != nil || created.Form.Height != nil {
		t.Fatalf("fresh session should have an empty form and no output: %+v", created)
	}
	base := fmt.Sprintf("%s/sessions/%s", srv.URL, created.ID)

	// a download before any action has nothing to serve
	decode(t, do(t, http.MethodGet, base+"/download", "", nil, nil), http.StatusNotFound, nil)

	// preset
	var preset port.GetSessionOutput
	decode(t, do(t, http.MethodPost, base+"/presets/aadhar-card", "", nil, nil), http.StatusOK, &preset)
	if preset.Form.Width == nil || *preset.Form.Width != 300 || preset.Form.Height == nil || *preset.Form.Height != 400 {
		t.Fatalf("preset not applied: %+v", preset.Form)
	}
	decode(t, do(t, http.MethodPost, base+"/presets/unknown", "", nil, nil), http.StatusNotFound, nil)

	// resize produces a lossless output at the exact form size
	var resized api.TransformResponse
	decode(t, do(t, http.MethodPost, base+"/resize", "", nil, nil), http.StatusOK, &resized)
	if resized.Output == nil || resized.Output.MimeType != "image/png" || resized.Output.Width != 300 || resized.Output.Height != 400 {
		t.Fatalf("unexpected resize output: %+v", resized.Output)
	}
	if resized.Output.Filename != "resized-image.png" {
		t.Errorf("filename = %q; want resized-image.png", resized.Output.Filename)
	}

	// compress
	var compressed api.TransformResponse
	decode(t, do(t, http.MethodPost, base+"/compress", "application/json", strings.NewReader(`{"target_size_mb":0.05}`), nil), http.StatusOK, &compressed)
	out := compressed.Output
	if out == nil || out.MimeType != "image/jpeg" || out.Width != 300 || out.Height != 400 {
		t.Fatalf("unexpected compress output: %+v", out)
	}
	if out.Quality < 0.1-1e-9 || out.Quality > 0.9+1e-9 {
		t.Errorf("quality %v out of range", out.Quality)
	}
	if out.TargetReached == (compressed.Warning != "") {
		t.Errorf("warning %q inconsistent with target_reached=%v", compressed.Warning, out.TargetReached)
	}
	decode(t, do(t, http.MethodPost, base+"/compress", "application/json", strings.NewReader(`{"target_size_mb":0}`), nil), http.StatusBadRequest, nil)

	// fetch with etag
	resp := do(t, http.MethodGet, base, "", nil, nil)
	etag := resp.Header.Get("ETag")
	var got port.GetSessionOutput
	decode(t, resp, http.StatusOK, &got)
	if etag == "" {
		t.Fatal("expected an ETag header")
	}
	if !got.HasOutput || got.Output == nil || got.Output.Operation != "compress" || got.DownloadURL == "" {
		t.Fatalf("unexpected session view: %+v", got)
	}
	resp = do(t, http.MethodGet, base, "", nil, http.Header{"If-None-Match": {etag}})
	decode(t, resp, http.StatusNotModified, nil)

	// download redirects to a signed link serving the output
	resp = do(t, http.MethodGet, base+"/download", "", nil, nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("download status = %d; want 302", resp.StatusCode)
	}
	file, err := http.Get(resp.Header.Get("Location"))
	if err != nil {
		t.Fatalf("follow download link: %v", err)
	}
	defer func() { _ = file.Body.Close() }()
	if file.StatusCode != http.StatusOK {
		t.Fatalf("signed link status = %d", file.StatusCode)
	}
	if cd := file.Header.Get("Content-Disposition"); !strings.Contains(cd, "resized-image.jpg") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	// delete
	decode(t, do(t, http.MethodDelete, base, "", nil, nil), http.StatusNoContent, nil)
	decode(t, do(t, http.MethodGet, base, "", nil, nil), http.StatusNotFound, nil)

	keys, err := tb.ObjectKeys(t.Context())
	if err != nil {
		t.Fatalf("list objects: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("objects left after delete: %v", keys)
	}
}

func TestUploadRejectsNonImageE2E(t *testing.T) {
	testDB, err := testutil.SetupMigratedDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer func() { _ = testDB.Cleanup() }()

	tb, err := testutil.SetupTestBucket(minioCfg)
	if err != nil {
		t.Fatalf("setup bucket: %v", err)
	}
	defer func() { _ = tb.Cleanup() }()

	srv := testutil.NewAPIServer(t, testDB.DB, minioCfg, tb.Name, "")

	body, ct := uploadBody(t, "notes.txt", []byte("definitely not an image"))
	decode(t, do(t, http.MethodPost, srv.URL+"/sessions", ct, body, nil), http.StatusUnprocessableEntity, nil)
}
