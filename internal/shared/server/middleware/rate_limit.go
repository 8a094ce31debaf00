package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tramites-backend/internal/shared/server/respond"
)

// ThrottleRule is a token bucket: Rate tokens per second, up to Burst.
type ThrottleRule struct {
	Rate  float64
	Burst int
}

// ThrottleConfig maps request groups to rules. GroupFor classifies each
// request; a group with no rule passes through unthrottled.
type ThrottleConfig struct {
	Rules    map[string]ThrottleRule
	GroupFor func(*gin.Context) string
	Clock    func() time.Time
}

type throttleBucket struct {
	tokens float64
	last   time.Time
}

// Throttle limits request rates per (caller, group) pair. The caller is the
// authenticated user when present, the client IP otherwise, so it must run
// after Auth in the chain.
func Throttle(cfg ThrottleConfig) gin.HandlerFunc {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	var mu sync.Mutex
	buckets := make(map[string]*throttleBucket)

	return func(c *gin.Context) {
		group := ""
		if cfg.GroupFor != nil {
			group = strings.TrimSpace(cfg.GroupFor(c))
		}
		rule, ok := cfg.Rules[group]
		if !ok || rule.Rate <= 0 || rule.Burst <= 0 {
			c.Next()
			return
		}

		caller := strings.TrimSpace(UserIDFromContext(c))
		if caller == "" {
			caller = strings.TrimSpace(c.ClientIP())
		}
		key := caller + "|" + group
		now := clock()

		mu.Lock()
		bucket, ok := buckets[key]
		if !ok {
			bucket = &throttleBucket{tokens: float64(rule.Burst), last: now}
			buckets[key] = bucket
		}
		if elapsed := now.Sub(bucket.last).Seconds(); elapsed > 0 {
			bucket.tokens = math.Min(float64(rule.Burst), bucket.tokens+elapsed*rule.Rate)
			bucket.last = now
		}
		allowed := bucket.tokens >= 1
		var wait float64
		if allowed {
			bucket.tokens--
		} else {
			wait = (1 - bucket.tokens) / rule.Rate
		}
		mu.Unlock()

		if allowed {
			c.Next()
			return
		}

		retryAfter := int(math.Ceil(wait))
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many requests", gin.H{
			"retryAfterSeconds": retryAfter,
		})
	}
}
