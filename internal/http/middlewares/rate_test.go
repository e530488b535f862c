package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropDatabas3/gatekeep/internal/rate"
)

type stubLimiter struct {
	res rate.Result
	err error
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (rate.Result, error) {
	return s.res, s.err
}

func TestWithRateLimit_NilLimiterIsNoop(t *testing.T) {
	var hit bool
	h := Chain(okHandler(&hit), WithRateLimit(nil, IPOnlyRateKey))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil))

	if !hit {
		t.Fatal("limiter nil debería dejar pasar todo")
	}
}

func TestWithRateLimit_Allowed(t *testing.T) {
	var hit bool
	lim := &stubLimiter{res: rate.Result{Allowed: true, Remaining: 4}}
	h := Chain(okHandler(&hit), WithRateLimit(lim, IPOnlyRateKey))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil))

	if !hit {
		t.Fatal("el request permitido debería pasar")
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Fatalf("X-RateLimit-Remaining = %q", got)
	}
}

func TestWithRateLimit_Blocked(t *testing.T) {
	var hit bool
	lim := &stubLimiter{res: rate.Result{Allowed: false, RetryAfter: 30 * time.Second}}
	h := Chain(okHandler(&hit), WithRateLimit(lim, IPOnlyRateKey))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil))

	if hit {
		t.Fatal("el request bloqueado no debería llegar al handler")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, esperado 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("falta el header Retry-After")
	}
}

func TestWithRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	var hit bool
	lim := &stubLimiter{err: context.DeadlineExceeded}
	h := Chain(okHandler(&hit), WithRateLimit(lim, IPOnlyRateKey))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil))

	if !hit {
		t.Fatal("con el limiter caído el request debería pasar")
	}
}

func TestRateKeys(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.RemoteAddr = "10.0.0.7:5555"

	if got := IPOnlyRateKey(req); got != "10.0.0.7" {
		t.Fatalf("IPOnlyRateKey = %q", got)
	}
	if got := IPPathRateKey(req); got != "10.0.0.7|/v1/auth/login" {
		t.Fatalf("IPPathRateKey = %q", got)
	}

	// Proxy: la primera IP del X-Forwarded-For manda.
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := IPOnlyRateKey(req); got != "203.0.113.9" {
		t.Fatalf("IPOnlyRateKey con XFF = %q", got)
	}
}
