package deduplication

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestGuard(t *testing.T, ttl time.Duration) (*RedisGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	g, err := NewRedisGuard(context.Background(), GuardConfig{Addr: mr.Addr(), KeyPrefix: "summarized:", TTL: ttl})
	if err != nil {
		t.Fatalf("NewRedisGuard: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g, mr
}

func TestKey(t *testing.T) {
	cases := []struct {
		prefix, id, want string
	}{
		{"summarized:", "dQw4w9WgXcQ", "summarized:dQw4w9WgXcQ"},
		{"summarized:", "  abc \n", "summarized:abc"},
		{"", "AbC", "AbC"},
	}
	for _, c := range cases {
		if got := Key(c.prefix, c.id); got != c.want {
			t.Errorf("Key(%q, %q) = %q; want %q", c.prefix, c.id, got, c.want)
		}
	}
}

func TestNewRedisGuardUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisGuard(ctx, GuardConfig{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Fatalf("error %q does not name the address", err.Error())
	}
}

func TestClaimOnce(t *testing.T) {
	g, mr := newTestGuard(t, time.Hour)
	ctx := context.Background()

	first, err := g.Claim(ctx, "dQw4w9WgXcQ")
	if err != nil || !first {
		t.Fatalf("first Claim = %v, %v; want true", first, err)
	}
	second, err := g.Claim(ctx, " dQw4w9WgXcQ ")
	if err != nil || second {
		t.Fatalf("second Claim = %v, %v; want false", second, err)
	}
	if !mr.Exists("summarized:dQw4w9WgXcQ") {
		t.Fatalf("claim key not written")
	}
	if ttl := mr.TTL("summarized:dQw4w9WgXcQ"); ttl != time.Hour {
		t.Fatalf("TTL = %v; want 1h", ttl)
	}
}

func TestReleaseAllowsNewClaim(t *testing.T) {
	g, _ := newTestGuard(t, time.Hour)
	ctx := context.Background()

	if ok, _ := g.Claim(ctx, "abc"); !ok {
		t.Fatalf("initial claim failed")
	}
	if err := g.Release(ctx, "abc"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	ok, err := g.Claim(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("Claim after release = %v, %v; want true", ok, err)
	}
}

func TestClaimExpires(t *testing.T) {
	g, mr := newTestGuard(t, time.Minute)
	ctx := context.Background()

	g.Claim(ctx, "abc")
	mr.FastForward(2 * time.Minute)

	ok, err := g.Claim(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("Claim after expiry = %v, %v; want true", ok, err)
	}
}

func TestClaimDefaultTTL(t *testing.T) {
	g, mr := newTestGuard(t, 0)
	g.Claim(context.Background(), "abc")
	if ttl := mr.TTL("summarized:abc"); ttl != 24*time.Hour {
		t.Fatalf("TTL = %v; want 24h", ttl)
	}
}

func TestClaimRedisDown(t *testing.T) {
	g, mr := newTestGuard(t, time.Hour)
	mr.Close()

	if _, err := g.Claim(context.Background(), "abc"); err == nil || !strings.Contains(err.Error(), "redis claim abc") {
		t.Fatalf("err = %v; want wrapped claim error", err)
	}
}
