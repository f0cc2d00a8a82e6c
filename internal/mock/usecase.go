package mock

import (
	"context"
	"io"

	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// MockSessionUploader implements port.SessionUploader for tests.
type MockSessionUploader struct {
	Out *model.Session
	Err error

	CreateCalled  bool
	ReplaceCalled bool
	GotFilename   string
	GotBody       []byte
	GotID         uuid.UUID
	// ReadErr is the error hit while draining the upload, returned when Err is nil.
	ReadErr error
}

func (m *MockSessionUploader) CreateSession(ctx context.Context, in port.CreateSessionInput) (*model.Session, error) {
	m.CreateCalled = true
	m.GotFilename = in.Filename
	return m.result(in.Reader)
}

func (m *MockSessionUploader) ReplaceSource(ctx context.Context, in port.ReplaceSourceInput) (*model.Session, error) {
	m.ReplaceCalled = true
	m.GotID = in.ID
	m.GotFilename = in.Filename
	return m.result(in.Reader)
}

func (m *MockSessionUploader) result(r io.Reader) (*model.Session, error) {
	m.GotBody, m.ReadErr = readAll(r)
	if m.Err == nil && m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.Out, m.Err
}

// MockFormEditor implements port.FormEditor for tests.
type MockFormEditor struct {
	Out *model.Session
	Err error

	UpdateCalled bool
	PresetCalled bool
	GotInput     port.UpdateFormInput
	GotID        uuid.UUID
	GotSlug      string
}

func (m *MockFormEditor) UpdateForm(ctx context.Context, in port.UpdateFormInput) (*model.Session, error) {
	m.UpdateCalled = true
	m.GotInput = in
	return m.Out, m.Err
}

func (m *MockFormEditor) ApplyPreset(ctx context.Context, id uuid.UUID, slug string) (*model.Session, error) {
	m.PresetCalled = true
	m.GotID = id
	m.GotSlug = slug
	return m.Out, m.Err
}

// MockSessionTransformer implements port.SessionTransformer for tests.
type MockSessionTransformer struct {
	Out port.TransformOutput
	Err error

	ResizeCalled   bool
	CompressCalled bool
	GotID          uuid.UUID
	GotCompress    port.CompressInput
}

func (m *MockSessionTransformer) Resize(ctx context.Context, id uuid.UUID) (port.TransformOutput, error) {
	m.ResizeCalled = true
	m.GotID = id
	return m.Out, m.Err
}

func (m *MockSessionTransformer) Compress(ctx context.Context, in port.CompressInput) (port.TransformOutput, error) {
	m.CompressCalled = true
	m.GotID = in.ID
	m.GotCompress = in
	return m.Out, m.Err
}

// MockSessionGetter implements port.SessionGetter for tests.
type MockSessionGetter struct {
	Out        *port.GetSessionOutput
	Err        error
	Called     bool
	LastCtxErr error

	LinkOut    string
	LinkErr    error
	LinkCalled bool
}

func (m *MockSessionGetter) GetSession(ctx context.Context, id uuid.UUID) (*port.GetSessionOutput, error) {
	m.Called = true
	m.LastCtxErr = ctx.Err()
	return m.Out, m.Err
}

func (m *MockSessionGetter) DownloadLink(ctx context.Context, id uuid.UUID) (string, error) {
	m.LinkCalled = true
	return m.LinkOut, m.LinkErr
}

// MockSessionDeleter implements port.SessionDeleter for tests.
type MockSessionDeleter struct {
	Err    error
	Called bool
	GotID  uuid.UUID
}

func (m *MockSessionDeleter) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.GotID = id
	return m.Err
}

// MockBacklogPurger implements port.BacklogPurger for tests.
type MockBacklogPurger struct {
	Err    error
	Called bool
}

func (m *MockBacklogPurger) PurgeBacklog(ctx context.Context) error {
	m.Called = true
	return m.Err
}
