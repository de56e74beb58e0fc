package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil).Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
		wantRedis  string
	}{
		{name: "without redis", pinger: nil, wantStatus: http.StatusOK, wantRedis: "disabled"},
		{
			name:       "redis healthy",
			pinger:     PingerFunc(func(ctx context.Context) error { return nil }),
			wantStatus: http.StatusOK,
			wantRedis:  "ok",
		},
		{
			name:       "redis down",
			pinger:     PingerFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tt.pinger).Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantRedis == "" {
				return
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["redis"] != tt.wantRedis {
				t.Fatalf("expected redis=%s, got %v", tt.wantRedis, body)
			}
		})
	}
}
