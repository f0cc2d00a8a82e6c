package mock

import (
	"context"

	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	PurgeCalled bool
	PurgeIDs    []uuid.UUID
	PurgeErr    error
}

func (m *MockDispatcher) EnqueuePurgeSession(ctx context.Context, id uuid.UUID) error {
	m.PurgeCalled = true
	m.PurgeIDs = append(m.PurgeIDs, id)
	return m.PurgeErr
}
