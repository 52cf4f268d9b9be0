package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/mediabatch/internal/domain"
)

// Quota is one rate budget: Limit requests per rolling Window
type Quota struct {
	Limit  int
	Window time.Duration
}

// window counts the requests admitted inside one quota's rolling
// interval. Hits are kept in admission order, so pruning drops a
// prefix.
type window struct {
	quota Quota
	hits  []time.Time
}

func (w *window) prune(now time.Time) {
	cutoff := now.Add(-w.quota.Window)
	keep := 0
	for keep < len(w.hits) && !w.hits[keep].After(cutoff) {
		keep++
	}
	w.hits = w.hits[keep:]
}

func (w *window) full(now time.Time) bool {
	w.prune(now)
	return len(w.hits) >= w.quota.Limit
}

func (w *window) record(now time.Time) {
	w.hits = append(w.hits, now)
}

type visitor struct {
	windows  []*window
	lastSeen time.Time
}

func newVisitor(quotas []Quota) *visitor {
	v := &visitor{windows: make([]*window, 0, len(quotas))}
	for _, q := range quotas {
		v.windows = append(v.windows, &window{quota: q})
	}
	return v
}

// claim names one budget a request must fit into
type claim struct {
	key    string
	quotas []Quota
}

// RateLimiter bounds requests per client network address with rolling
// windows: at most Limit requests in any interval of length Window.
// Counters are in-memory only and reset on process restart. All
// budgets applying to a request must have capacity or the request is
// rejected with 429 before any work begins; a rejected request is not
// charged against any budget.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	defaultQuotas    []Quota
	submissionQuotas []Quota

	ttl  time.Duration
	stop chan struct{}
	once sync.Once
}

// NewRateLimiter creates a rate limiter from configuration and starts
// a janitor that evicts visitors idle longer than the TTL
func NewRateLimiter(config domain.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		defaultQuotas: []Quota{
			{Limit: config.PerDay, Window: 24 * time.Hour},
			{Limit: config.PerHour, Window: time.Hour},
		},
		submissionQuotas: []Quota{
			{Limit: config.PerMinute, Window: time.Minute},
		},
		ttl:  config.VisitorTTL,
		stop: make(chan struct{}),
	}

	sweep := config.SweepPeriod
	if sweep <= 0 {
		sweep = time.Hour
	}
	go rl.janitor(sweep)

	return rl
}

// Stop terminates the janitor goroutine
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Default returns middleware enforcing the shared per-endpoint budgets
// (daily and hourly). Counters are kept per client and route.
func (rl *RateLimiter) Default() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok := rl.allow(time.Now(),
			claim{key: c.ClientIP() + "|" + c.FullPath(), quotas: rl.defaultQuotas})
		if !ok {
			reject(c)
			return
		}
		c.Next()
	}
}

// Submission returns middleware enforcing the shared budgets together
// with the batch-submission budget (per minute). All windows are
// checked before any is charged, so a rejection leaves every budget
// untouched.
func (rl *RateLimiter) Submission() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok := rl.allow(time.Now(),
			claim{key: c.ClientIP() + "|" + c.FullPath(), quotas: rl.defaultQuotas},
			claim{key: c.ClientIP() + "|submission", quotas: rl.submissionQuotas})
		if !ok {
			reject(c)
			return
		}
		c.Next()
	}
}

func reject(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error": "rate limit exceeded",
	})
}

// allow admits the request only when every window behind every claim
// has capacity at time now. Windows are charged after all checks pass.
func (rl *RateLimiter) allow(now time.Time, claims ...claim) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	checked := make([]*visitor, 0, len(claims))
	for _, cl := range claims {
		v, ok := rl.visitors[cl.key]
		if !ok {
			v = newVisitor(cl.quotas)
			rl.visitors[cl.key] = v
		}
		v.lastSeen = now
		checked = append(checked, v)
	}

	for _, v := range checked {
		for _, w := range v.windows {
			if w.full(now) {
				return false
			}
		}
	}

	for _, v := range checked {
		for _, w := range v.windows {
			w.record(now)
		}
	}
	return true
}

// janitor periodically drops visitors that have been idle past the TTL
func (rl *RateLimiter) janitor(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep(time.Now())
		}
	}
}

func (rl *RateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, key)
		}
	}
}
