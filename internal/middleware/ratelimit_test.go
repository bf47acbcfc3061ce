package middleware

import (
	"fmt"
	"testing"
)

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0, 2)

	if !rl.Allow("caller") || !rl.Allow("caller") {
		t.Fatal("burst requests should be allowed")
	}
	if rl.Allow("caller") {
		t.Error("request beyond the burst should be blocked")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(0, 1)

	if !rl.Allow("a") {
		t.Fatal("first request for a should pass")
	}
	if !rl.Allow("b") {
		t.Error("b must not inherit a's consumed tokens")
	}
}

func TestExhaustedBucketSurvivesKeyChurn(t *testing.T) {
	rl := NewRateLimiter(0, 1)

	if !rl.Allow("hot") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("hot") {
		t.Fatal("second request should be blocked")
	}

	// Flood the map far past the eviction threshold; the hot caller was
	// active moments ago, so its consumed-token state must survive.
	for i := 0; i < maxEntries+100; i++ {
		rl.Allow(fmt.Sprintf("churn-%d", i))
	}

	if rl.Allow("hot") {
		t.Error("key churn reset an active caller's bucket")
	}
}
