package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mediabatch/internal/domain"
)

func testLimiterConfig() domain.RateLimitConfig {
	return domain.RateLimitConfig{
		PerDay:      50,
		PerHour:     10,
		PerMinute:   5,
		VisitorTTL:  time.Hour,
		SweepPeriod: time.Hour,
	}
}

func testRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/process", rl.Submission(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/other", rl.Default(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func do(router *gin.Engine, method, path, addr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = addr
	router.ServeHTTP(w, req)
	return w.Code
}

// submitAt drives the submission budgets directly with an explicit
// clock, the way Submission() does with time.Now
func submitAt(rl *RateLimiter, now time.Time) bool {
	return rl.allow(now,
		claim{key: "1.2.3.4|/process", quotas: rl.defaultQuotas},
		claim{key: "1.2.3.4|submission", quotas: rl.submissionQuotas})
}

func TestSubmission_SixthRequestWithinMinuteRejected(t *testing.T) {
	rl := NewRateLimiter(testLimiterConfig())
	defer rl.Stop()
	router := testRouter(rl)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, do(router, "POST", "/process", "1.2.3.4:1000"), "request %d", i+1)
	}
	// daily and hourly budgets still have room, the minute budget decides
	assert.Equal(t, http.StatusTooManyRequests, do(router, "POST", "/process", "1.2.3.4:1000"))
}

func TestSubmission_WindowIsRolling(t *testing.T) {
	rl := NewRateLimiter(testLimiterConfig())
	defer rl.Stop()

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.True(t, submitAt(rl, start), "request %d", i+1)
	}

	// the 6th request stays rejected anywhere inside the minute, not
	// just immediately after the burst
	assert.False(t, submitAt(rl, start.Add(13*time.Second)))
	assert.False(t, submitAt(rl, start.Add(59*time.Second)))

	// once the first hits age out the budget opens up again
	assert.True(t, submitAt(rl, start.Add(61*time.Second)))
}

func TestSubmission_RejectionChargesNoBudget(t *testing.T) {
	config := testLimiterConfig()
	config.PerMinute = 1
	config.PerHour = 2
	rl := NewRateLimiter(config)
	defer rl.Stop()

	start := time.Now()
	require.True(t, submitAt(rl, start))

	// minute budget is spent; rejections must not erode the hourly one
	for i := 0; i < 5; i++ {
		require.False(t, submitAt(rl, start.Add(time.Duration(i+1)*time.Second)))
	}

	// second hourly slot is still free a minute later
	assert.True(t, submitAt(rl, start.Add(61*time.Second)))
	// and the third is rejected by the hourly budget
	assert.False(t, submitAt(rl, start.Add(2*61*time.Second)))
}

func TestSubmission_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(testLimiterConfig())
	defer rl.Stop()
	router := testRouter(rl)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, do(router, "POST", "/process", "1.2.3.4:1000"))
	}
	assert.Equal(t, http.StatusTooManyRequests, do(router, "POST", "/process", "1.2.3.4:1000"))

	// a different client address still has its full budget
	assert.Equal(t, http.StatusOK, do(router, "POST", "/process", "5.6.7.8:1000"))
}

func TestDefault_HourlyBudget(t *testing.T) {
	config := testLimiterConfig()
	config.PerMinute = 100 // keep the minute budget out of the way
	rl := NewRateLimiter(config)
	defer rl.Stop()
	router := testRouter(rl)

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, do(router, "GET", "/other", "1.2.3.4:1000"), "request %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(router, "GET", "/other", "1.2.3.4:1000"))
}

func TestDefault_BudgetsArePerRoute(t *testing.T) {
	config := testLimiterConfig()
	config.PerMinute = 100
	rl := NewRateLimiter(config)
	defer rl.Stop()
	router := testRouter(rl)

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, do(router, "GET", "/other", "1.2.3.4:1000"))
	}
	require.Equal(t, http.StatusTooManyRequests, do(router, "GET", "/other", "1.2.3.4:1000"))

	// exhausting one route's shared budget leaves another route usable
	assert.Equal(t, http.StatusOK, do(router, "POST", "/process", "1.2.3.4:1000"))
}

func TestSweep_EvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(testLimiterConfig())
	defer rl.Stop()
	router := testRouter(rl)

	require.Equal(t, http.StatusOK, do(router, "POST", "/process", "1.2.3.4:1000"))

	rl.mu.Lock()
	visitors := len(rl.visitors)
	rl.mu.Unlock()
	require.Greater(t, visitors, 0)

	rl.sweep(time.Now().Add(2 * time.Hour))

	rl.mu.Lock()
	visitors = len(rl.visitors)
	rl.mu.Unlock()
	assert.Zero(t, visitors)
}
