package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/memledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks responses served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// storedResponse is what the store keeps per key.
type storedResponse struct {
	Fingerprint string `json:"fingerprint"`
	Body        []byte `json:"body"`
	Status      int    `json:"status"`
}

// IdempotencyMiddleware replays the response of a completed POST with the same
// Idempotency-Key instead of running it again.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// Wrap wraps an http.Handler with idempotency checking.
//
// Responses below 500 are stored, so a replayed transfer that was rejected
// for insufficient funds is rejected again without touching the balances.
// Server errors and panics release the key so the client can retry. Keys are
// scoped to method and path, and a replay with a different body is refused.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only apply to mutating requests
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		storeKey := scopedKey(r, key)
		fingerprint := requestFingerprint(body)
		logger := log.Ctx(r.Context()).With().Str("idempotency_key", storeKey).Logger()

		reserved, cached, err := m.store.Reserve(r.Context(), storeKey, m.ttl)
		if err != nil {
			logger.Error().Err(err).Msg("idempotency check failed")
			writeJSONError(w, http.StatusInternalServerError, "idempotency check failed")
			return
		}

		if !reserved {
			if cached == nil {
				writeJSONError(w, http.StatusConflict, "request with this idempotency key is in progress")
				return
			}
			replay(w, cached, fingerprint)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}

		completed := false
		defer func() {
			if completed {
				return
			}
			// The handler panicked; free the key before Recovery answers.
			if err := m.store.Release(r.Context(), storeKey); err != nil {
				logger.Warn().Err(err).Msg("failed to release idempotency key")
			}
		}()

		next.ServeHTTP(recorder, r)
		completed = true

		if recorder.statusCode >= http.StatusInternalServerError {
			if err := m.store.Release(r.Context(), storeKey); err != nil {
				logger.Warn().Err(err).Msg("failed to release idempotency key")
			}
			return
		}

		payload, err := json.Marshal(storedResponse{
			Fingerprint: fingerprint,
			Body:        recorder.body.Bytes(),
			Status:      recorder.statusCode,
		})
		if err == nil {
			err = m.store.Complete(r.Context(), storeKey, payload, m.ttl)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("failed to store idempotent response")
		}
	})
}

// scopedKey binds a client key to the method and path it was first used on.
func scopedKey(r *http.Request, key string) string {
	return r.Method + " " + r.URL.Path + ":" + key
}

func requestFingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func replay(w http.ResponseWriter, cached []byte, fingerprint string) {
	var stored storedResponse
	if err := json.Unmarshal(cached, &stored); err != nil || stored.Status == 0 {
		writeJSONError(w, http.StatusInternalServerError, "corrupt idempotent response")
		return
	}
	if stored.Fingerprint != fingerprint {
		writeJSONError(w, http.StatusUnprocessableEntity, "idempotency key reused with a different request body")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(stored.Status)
	_, _ = w.Write(stored.Body)
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
