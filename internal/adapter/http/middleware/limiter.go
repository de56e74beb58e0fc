package middleware

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimiter bounds the number of in-flight requests with a weighted
// semaphore. Requests wait up to the queue timeout for a slot and are shed
// with 503 afterwards.
type ConcurrencyLimiter struct {
	sem          *semaphore.Weighted
	queueTimeout time.Duration

	// OnShed is called for every rejected request.
	OnShed func()
}

// NewConcurrencyLimiter creates a limiter allowing maxInFlight concurrent requests.
func NewConcurrencyLimiter(maxInFlight int64, queueTimeout time.Duration) *ConcurrencyLimiter {
	if maxInFlight <= 0 {
		maxInFlight = 1
	}
	return &ConcurrencyLimiter{
		sem:          semaphore.NewWeighted(maxInFlight),
		queueTimeout: queueTimeout,
	}
}

// Limit is the middleware.
func (l *ConcurrencyLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), l.queueTimeout)
		err := l.sem.Acquire(ctx, 1)
		cancel()
		if err != nil {
			if l.OnShed != nil {
				l.OnShed()
			}
			w.Header().Set("Retry-After", "1")
			writeJSONError(w, http.StatusServiceUnavailable, "server busy")
			return
		}
		defer l.sem.Release(1)

		next.ServeHTTP(w, r)
	})
}
