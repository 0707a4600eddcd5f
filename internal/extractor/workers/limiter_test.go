package workers

import (
	"testing"
	"time"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
)

func limiterConfig(ratePerMinute int) *config.Config {
	cfg := &config.Config{}
	cfg.Workers.RateLimit = ratePerMinute
	return cfg
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(limiterConfig(60))
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		if !rl.Allow("example.com") {
			t.Fatalf("request %d should be within burst", i+1)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	// One request per minute: the burst of 5 drains and nothing refills
	// within the test.
	rl := NewRateLimiter(limiterConfig(1))
	defer rl.Stop()

	allowed := 0
	for i := 0; i < 10; i++ {
		if rl.Allow("example.com") {
			allowed++
		}
	}
	if allowed > 5 {
		t.Fatalf("expected at most the burst of 5, got %d", allowed)
	}
	if allowed == 0 {
		t.Fatalf("expected at least one allowed request")
	}
}

func TestRateLimiter_DomainsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(limiterConfig(1))
	defer rl.Stop()

	for i := 0; i < 6; i++ {
		rl.Allow("first.com")
	}
	if !rl.Allow("second.com") {
		t.Fatalf("second domain must not be limited by the first")
	}
}

func TestRateLimiter_Stats(t *testing.T) {
	rl := NewRateLimiter(limiterConfig(60))
	defer rl.Stop()

	rl.Allow("example.com")
	rl.RecordFailure("example.com")
	rl.RecordSuccess("example.com")

	stats := rl.GetDomainStats("example.com")
	if stats["requests"].(int64) != 1 {
		t.Fatalf("expected 1 request, got %v", stats["requests"])
	}
	if stats["failures"].(int64) != 1 {
		t.Fatalf("expected 1 failure, got %v", stats["failures"])
	}
	if _, ok := stats["last_seen"].(time.Time); !ok {
		t.Fatalf("expected last_seen timestamp")
	}

	all := rl.GetAllStats()
	if _, ok := all["example.com"]; !ok {
		t.Fatalf("expected example.com in aggregate stats")
	}
}

func TestExtractDomainFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.Indeed.com/viewjob?jk=1", "www.indeed.com"},
		{"https://jobs.lever.co/acme/123", "jobs.lever.co"},
		{"not a url at all ://", "unknown"},
		{"relative/path", "unknown"},
	}
	for _, tc := range cases {
		if got := extractDomainFromURL(tc.url); got != tc.want {
			t.Fatalf("extractDomainFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
