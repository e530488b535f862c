package rate

import (
	"context"
	"errors"
	"testing"
	"time"
)

// memCounter es un Counter en memoria sin TTL real; suficiente para una
// ventana que no expira durante el test.
type memCounter struct {
	hits map[string]int64
	err  error
}

func (m *memCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.hits == nil {
		m.hits = map[string]int64{}
	}
	m.hits[key]++
	return m.hits[key], nil
}

func TestAllow_UntilMax(t *testing.T) {
	ctx := context.Background()
	l := NewWindowLimiter(&memCounter{}, "rl:test:", 3, time.Hour)

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow err: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("hit %d debería estar permitido", i)
		}
		if res.Remaining != int64(3-i) {
			t.Fatalf("hit %d: remaining = %d, esperado %d", i, res.Remaining, 3-i)
		}
	}

	res, err := l.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("Allow err: %v", err)
	}
	if res.Allowed {
		t.Fatal("el cuarto hit debería rechazarse")
	}
	if res.Remaining != 0 {
		t.Fatalf("remaining = %d, esperado 0", res.Remaining)
	}
	if res.RetryAfter <= 0 {
		t.Fatalf("RetryAfter = %v, esperado > 0", res.RetryAfter)
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	l := NewWindowLimiter(&memCounter{}, "rl:test:", 1, time.Hour)

	if res, _ := l.Allow(ctx, "a"); !res.Allowed {
		t.Fatal("primer hit de a debería pasar")
	}
	if res, _ := l.Allow(ctx, "a"); res.Allowed {
		t.Fatal("segundo hit de a debería rechazarse")
	}
	if res, _ := l.Allow(ctx, "b"); !res.Allowed {
		t.Fatal("el límite de a no debería afectar a b")
	}
}

func TestAllow_CounterErrorPropagates(t *testing.T) {
	boom := errors.New("cache down")
	l := NewWindowLimiter(&memCounter{err: boom}, "rl:test:", 1, time.Hour)

	if _, err := l.Allow(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("esperado error del counter, got %v", err)
	}
}
