package session

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

type formEditorSrv struct {
	repo  port.SessionRepository
	cache port.Cache
	locks *KeyedLocker
}

// compile-time check: *formEditorSrv must satisfy port.FormEditor
var _ port.FormEditor = (*formEditorSrv)(nil)

func NewFormEditor(repo port.SessionRepository, cache port.Cache, locks *KeyedLocker) port.FormEditor {
	return &formEditorSrv{repo, cache, locks}
}

// UpdateForm applies the lock first, then width, then height, each through
// the ratio coupling.
func (s *formEditorSrv) UpdateForm(ctx context.Context, in port.UpdateFormInput) (*model.Session, error) {
	if (in.Width != nil && *in.Width < 0) || (in.Height != nil && *in.Height < 0) {
		return nil, fmt.Errorf("%w: negative value", ErrInvalidDimensions)
	}

	return s.edit(ctx, in.ID, func(sess *model.Session) {
		if in.LockRatio != nil {
			sess.SetLock(*in.LockRatio)
		}
		if in.Width != nil {
			sess.SetWidth(*in.Width)
		}
		if in.Height != nil {
			sess.SetHeight(*in.Height)
		}
	})
}

// ApplyPreset sets both dimensions from a named preset, lock or not.
func (s *formEditorSrv) ApplyPreset(ctx context.Context, id uuid.UUID, slug string) (*model.Session, error) {
	p, ok := model.FindPreset(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, slug)
	}
	return s.edit(ctx, id, func(sess *model.Session) {
		sess.ApplyPreset(p)
	})
}

func (s *formEditorSrv) edit(ctx context.Context, id uuid.UUID, apply func(*model.Session)) (*model.Session, error) {
	unlock := s.locks.Lock(id.String())
	defer unlock()

	sess, err := loadSession(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	apply(sess)
	sess.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed updating session #%s: %w", id, err)
	}
	invalidate(ctx, s.cache, id)
	return sess, nil
}
