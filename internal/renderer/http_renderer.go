package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/fhuszti/resizer-ms-go/internal/uuid"
	"golang.org/x/sync/singleflight"
)

type httpRenderer struct {
	cache port.Cache
	locks port.SessionLocker
	group singleflight.Group
}

type rendered struct {
	raw  []byte
	etag string
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation. locks must be the
// same locker the session writers use.
func NewHTTPRenderer(cache port.Cache, locks port.SessionLocker) port.HTTPRenderer {
	return &httpRenderer{cache: cache, locks: locks}
}

// RenderGetSession serves the session JSON from cache, or runs the getter and
// caches its output until the signed links expire. A render holds the session
// lock, so a writer's invalidation always lands after the cache write.
// Concurrent misses for one session share a single render. The ETag is a
// quoted CRC32 of the body.
func (r *httpRenderer) RenderGetSession(ctx context.Context, getter port.SessionGetter, id uuid.UUID) ([]byte, string, error) {
	raw, err := r.cache.GetSessionDetails(ctx, id)
	etag, errEtag := r.cache.GetEtagSessionDetails(ctx, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	v, err, _ := r.group.Do(id.String(), func() (interface{}, error) {
		// shared by every coalesced caller, so not tied to the first one
		ctx := context.WithoutCancel(ctx)

		unlock := r.locks.Lock(id.String())
		defer unlock()

		out, err := getter.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("json marshal: %w", err)
		}

		etag := ETag(raw)
		r.cache.SetSessionDetails(ctx, id, raw, out.ValidUntil)
		r.cache.SetEtagSessionDetails(ctx, id, etag, out.ValidUntil)
		return rendered{raw: raw, etag: etag}, nil
	})
	if err != nil {
		return nil, "", err
	}

	res := v.(rendered)
	return res.raw, res.etag, nil
}

func ETag(body []byte) string {
	return fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(body))
}
