package middleware

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"docpool/internal/infrastructure/cache"
	"docpool/pkg/response"

	"github.com/sirupsen/logrus"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	IdempotencyReplayedHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
)

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*cache.StoredResponse, error)
	Save(ctx context.Context, key string, resp *cache.StoredResponse) (bool, error)
}

// IdempotencyMiddleware replays the first successful response for a repeated
// Idempotency-Key. Requests without the header pass through untouched, and so
// does everything when no store is configured.
type IdempotencyMiddleware struct {
	store IdempotencyStore
	scope string
	log   *logrus.Logger
}

func NewIdempotencyMiddleware(store IdempotencyStore, scope string, log *logrus.Logger) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{
		store: store,
		scope: scope,
		log:   log,
	}
}

func (m *IdempotencyMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
		if key == "" || m.store == nil {
			next.ServeHTTP(w, r)
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			response.BadRequest(w, "Idempotency-Key is too long")
			return
		}

		storeKey := m.scope + ":" + key

		cached, err := m.store.Get(r.Context(), storeKey)
		if err != nil {
			m.log.Warnf("Failed to read idempotency key: %+v", err)
			next.ServeHTTP(w, r)
			return
		}
		if cached != nil {
			if cached.ContentType != "" {
				w.Header().Set("Content-Type", cached.ContentType)
			}
			w.Header().Set(IdempotencyReplayedHeader, "true")
			w.WriteHeader(cached.Status)
			w.Write(cached.Body)
			return
		}

		rw := newResponseWriter(w)
		rw.body = &bytes.Buffer{}
		next.ServeHTTP(rw, r)

		if rw.Status() < 200 || rw.Status() >= 300 {
			return
		}

		resp := &cache.StoredResponse{
			Status:      rw.Status(),
			ContentType: rw.Header().Get("Content-Type"),
			Body:        rw.body.Bytes(),
		}
		if _, err := m.store.Save(context.WithoutCancel(r.Context()), storeKey, resp); err != nil {
			m.log.Warnf("Failed to save idempotency key: %+v", err)
		}
	})
}
