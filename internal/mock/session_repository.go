package mock

import (
	"context"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// MockSessionRepo implements repository operations for tests.
type MockSessionRepo struct {
	SessionRecord *model.Session

	GetErr     error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	ListErr    error
	ListOut    []uuid.UUID
	ListBefore time.Time

	GetCalled    bool
	Created      *model.Session
	Updated      *model.Session
	UpdateCount  int
	DeleteCalled bool
	DeletedID    uuid.UUID
	ListCalled   bool
}

func (m *MockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.SessionRecord, nil
}

func (m *MockSessionRepo) Create(ctx context.Context, s *model.Session) error {
	m.Created = s
	return m.CreateErr
}

func (m *MockSessionRepo) Update(ctx context.Context, s *model.Session) error {
	m.Updated = s
	m.UpdateCount++
	return m.UpdateErr
}

func (m *MockSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *MockSessionRepo) ListIDsUpdatedBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	m.ListCalled = true
	m.ListBefore = before
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}
