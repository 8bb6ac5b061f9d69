package ratelimit

import "testing"

func TestAllowWithinCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("BTC/USDT", 3, 0) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("BTC/USDT", 3, 0) {
		t.Fatalf("expected bucket exhausted")
	}
}

func TestAllowPerKeyIsolation(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("first key should be allowed")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("second key has its own bucket")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("first key exhausted")
	}
}
