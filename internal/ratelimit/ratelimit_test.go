package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestAllowPerClientBurst(t *testing.T) {
	l := New(rate.Limit(0.001), 2)
	defer l.Stop()

	if !l.Allow("1.2.3.4:1000") || !l.Allow("1.2.3.4:1001") {
		t.Fatal("expected burst to be allowed")
	}
	if l.Allow("1.2.3.4:1002") {
		t.Error("expected third attempt to be blocked")
	}

	// A different address has its own bucket.
	if !l.Allow("5.6.7.8:2000") {
		t.Error("expected separate client to be allowed")
	}
}

func TestMiddlewareReturns429(t *testing.T) {
	l := New(rate.Limit(0.001), 1)
	defer l.Stop()

	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for second request, got %d", rec.Code)
	}
}
