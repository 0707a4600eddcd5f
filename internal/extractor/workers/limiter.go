package workers

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/internal/logging"
)

// DomainLimiter tracks the token bucket and counters for one remote domain.
type DomainLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	requests int64
	failures int64
	mu       sync.RWMutex
}

// RateLimiter caps outbound request rates per remote domain so bursts of
// extraction requests for one job board do not hammer it.
type RateLimiter struct {
	config         *config.Config
	domainLimiters map[string]*DomainLimiter
	mu             sync.RWMutex
	logger         logging.Logger
	cleanupTicker  *time.Ticker
	stopCleanup    chan bool
}

// NewRateLimiter creates a per-domain rate limiter from configuration.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	rl := &RateLimiter{
		config:         cfg,
		domainLimiters: make(map[string]*DomainLimiter),
		logger:         logging.GetGlobalLogger().WithField("component", "rate_limiter"),
		cleanupTicker:  time.NewTicker(5 * time.Minute),
		stopCleanup:    make(chan bool),
	}

	go rl.cleanupRoutine()
	return rl
}

// Allow reports whether a request to the domain may proceed now.
func (rl *RateLimiter) Allow(domain string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	domain = strings.ToLower(domain)
	limiter := rl.getDomainLimiter(domain)

	allowed := limiter.limiter.Allow()
	if allowed {
		limiter.mu.Lock()
		limiter.requests++
		limiter.lastSeen = time.Now()
		limiter.mu.Unlock()
	} else {
		rl.logger.Debug("Request rejected by rate limiter", map[string]interface{}{"domain": domain})
	}

	return allowed
}

// RecordSuccess notes a completed request for the domain.
func (rl *RateLimiter) RecordSuccess(domain string) {
	rl.touch(strings.ToLower(domain))
}

// RecordFailure notes a failed request for the domain.
func (rl *RateLimiter) RecordFailure(domain string) {
	rl.mu.RLock()
	limiter, exists := rl.domainLimiters[strings.ToLower(domain)]
	rl.mu.RUnlock()

	if exists {
		limiter.mu.Lock()
		limiter.failures++
		limiter.lastSeen = time.Now()
		limiter.mu.Unlock()
	}
}

func (rl *RateLimiter) touch(domain string) {
	rl.mu.RLock()
	limiter, exists := rl.domainLimiters[domain]
	rl.mu.RUnlock()

	if exists {
		limiter.mu.Lock()
		limiter.lastSeen = time.Now()
		limiter.mu.Unlock()
	}
}

// getDomainLimiter returns the limiter for domain, creating it on first use.
// Caller must hold rl.mu.
func (rl *RateLimiter) getDomainLimiter(domain string) *DomainLimiter {
	if limiter, exists := rl.domainLimiters[domain]; exists {
		return limiter
	}

	// Configured as requests per minute, rate.Limit wants per second.
	rps := rate.Limit(float64(rl.config.Workers.RateLimit) / 60.0)
	burst := 5

	limiter := &DomainLimiter{
		limiter:  rate.NewLimiter(rps, burst),
		lastSeen: time.Now(),
	}
	rl.domainLimiters[domain] = limiter

	rl.logger.Info("Created domain rate limiter", map[string]interface{}{
		"domain": domain,
		"rate":   float64(rps),
		"burst":  burst,
	})

	return limiter
}

// GetDomainStats returns counters for one domain.
func (rl *RateLimiter) GetDomainStats(domain string) map[string]interface{} {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	domain = strings.ToLower(domain)
	stats := make(map[string]interface{})

	if limiter, exists := rl.domainLimiters[domain]; exists {
		limiter.mu.RLock()
		stats["requests"] = limiter.requests
		stats["failures"] = limiter.failures
		stats["last_seen"] = limiter.lastSeen
		stats["limit"] = float64(limiter.limiter.Limit())
		stats["burst"] = limiter.limiter.Burst()
		limiter.mu.RUnlock()
	}

	return stats
}

// GetAllStats returns counters for every tracked domain.
func (rl *RateLimiter) GetAllStats() map[string]map[string]interface{} {
	rl.mu.RLock()
	domains := make([]string, 0, len(rl.domainLimiters))
	for domain := range rl.domainLimiters {
		domains = append(domains, domain)
	}
	rl.mu.RUnlock()

	allStats := make(map[string]map[string]interface{}, len(domains))
	for _, domain := range domains {
		allStats[domain] = rl.GetDomainStats(domain)
	}
	return allStats
}

func (rl *RateLimiter) cleanupRoutine() {
	for {
		select {
		case <-rl.cleanupTicker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			rl.cleanupTicker.Stop()
			return
		}
	}
}

// cleanup drops limiters for domains idle longer than 10 minutes.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	removed := 0

	for domain, limiter := range rl.domainLimiters {
		limiter.mu.RLock()
		lastSeen := limiter.lastSeen
		limiter.mu.RUnlock()

		if lastSeen.Before(cutoff) {
			delete(rl.domainLimiters, domain)
			removed++
		}
	}

	if removed > 0 {
		rl.logger.Info("Cleaned up idle rate limiters", map[string]interface{}{"removed_count": removed})
	}
}

// Stop halts the cleanup routine.
func (rl *RateLimiter) Stop() {
	rl.stopCleanup <- true
}

func extractDomainFromURL(urlStr string) string {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "unknown"
	}
	domain := parsedURL.Hostname()
	if domain == "" {
		return "unknown"
	}
	return strings.ToLower(domain)
}
