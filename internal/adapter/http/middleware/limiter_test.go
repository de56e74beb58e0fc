package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestConcurrencyLimiter_ShedsWhenFull(t *testing.T) {
	shed := 0
	l := NewConcurrencyLimiter(1, 20*time.Millisecond)
	l.OnShed = func() { shed++ }

	entered := make(chan struct{})
	release := make(chan struct{})
	handler := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusCreated)
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	first := httptest.NewRecorder()
	go func() {
		defer wg.Done()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/", nil))
	}()
	<-entered

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/", nil))

	close(release)
	wg.Wait()

	if first.Code != http.StatusCreated {
		t.Fatalf("expected first request to succeed, got %d", first.Code)
	}
	if second.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected second request to be shed, got %d", second.Code)
	}
	if shed != 1 {
		t.Fatalf("expected 1 shed request, got %d", shed)
	}
}

func TestConcurrencyLimiter_ReleasesSlot(t *testing.T) {
	l := NewConcurrencyLimiter(1, 10*time.Millisecond)
	handler := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
}
