package session

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/resizer-ms-go/internal/mock"
	"github.com/fhuszti/resizer-ms-go/internal/port"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestUpdateForm(t *testing.T) {
	tests := []struct {
		name       string
		startW     int
		startH     int
		startLock  bool
		in         port.UpdateFormInput
		wantW      int
		wantH      int
		wantLocked bool
	}{
		{"free width edit", 0, 0, false, port.UpdateFormInput{Width: intPtr(300)}, 300, 0, false},
		{"lock then width with height set", 100, 100, false, port.UpdateFormInput{LockRatio: boolPtr(true), Width: intPtr(300)}, 300, 240, true},
		{"locked height edit", 300, 240, true, port.UpdateFormInput{Height: intPtr(333)}, 416, 333, true},
		{"locked width with empty height", 0, 0, true, port.UpdateFormInput{Width: intPtr(500)}, 500, 0, true},
		{"unlock keeps values", 300, 240, true, port.UpdateFormInput{LockRatio: boolPtr(false)}, 300, 240, false},
		{"clear width", 300, 240, false, port.UpdateFormInput{Width: intPtr(0)}, 0, 240, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := sampleSession()
			sess.TargetWidth, sess.TargetHeight, sess.LockRatio = tc.startW, tc.startH, tc.startLock
			repo := &mock.MockSessionRepo{SessionRecord: sess}
			cache := &mock.Cache{}
			svc := NewFormEditor(repo, cache, NewKeyedLocker())

			tc.in.ID = testID
			out, err := svc.UpdateForm(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.TargetWidth != tc.wantW || out.TargetHeight != tc.wantH || out.LockRatio != tc.wantLocked {
				t.Errorf("got %dx%d lock=%v, want %dx%d lock=%v", out.TargetWidth, out.TargetHeight, out.LockRatio, tc.wantW, tc.wantH, tc.wantLocked)
			}
			if repo.Updated != sess || !cache.DelSessionCalled {
				t.Error("expected update and cache invalidation")
			}
		})
	}
}

func TestUpdateForm_Negative(t *testing.T) {
	repo := &mock.MockSessionRepo{SessionRecord: sampleSession()}
	svc := NewFormEditor(repo, &mock.Cache{}, NewKeyedLocker())

	_, err := svc.UpdateForm(context.Background(), port.UpdateFormInput{ID: testID, Height: intPtr(-3)})
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
	if repo.GetCalled {
		t.Error("repository should not be hit")
	}
}

func TestApplyPreset(t *testing.T) {
	sess := sampleSession()
	sess.SetLock(true)
	sess.TargetWidth, sess.TargetHeight = 500, 400
	repo := &mock.MockSessionRepo{SessionRecord: sess}
	svc := NewFormEditor(repo, &mock.Cache{}, NewKeyedLocker())

	out, err := svc.ApplyPreset(context.Background(), testID, "aadhar-card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TargetWidth != 300 || out.TargetHeight != 400 {
		t.Errorf("got %dx%d, want 300x400 even with the lock on", out.TargetWidth, out.TargetHeight)
	}
}

func TestApplyPreset_Unknown(t *testing.T) {
	repo := &mock.MockSessionRepo{SessionRecord: sampleSession()}
	svc := NewFormEditor(repo, &mock.Cache{}, NewKeyedLocker())

	if _, err := svc.ApplyPreset(context.Background(), testID, "driving-licence"); !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
}
