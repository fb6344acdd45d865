package usage

import (
	"context"
	"fmt"
	"time"

	"ai-code-debugger/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Actions with independent daily counters.
const (
	ActionAnalyze = "analyze"
	ActionChat    = "chat"
)

// LimitExceededError carries the usage details for the 429 response.
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily AI usage limit exceeded"
}

// Limiter enforces per-client daily quotas on the LLM-backed endpoints.
// Counters live in Redis with an expiry at the next UTC midnight. When
// Redis is unavailable the limiter fails open: losing quota enforcement
// is preferable to taking the debugger down with it.
type Limiter struct {
	rdb    *redis.Client
	logger logger.ILogger
	now    func() time.Time
}

func NewLimiter(rdb *redis.Client, log logger.ILogger) *Limiter {
	return &Limiter{
		rdb:    rdb,
		logger: log,
		now:    time.Now,
	}
}

// Allow consumes one unit of the action's daily quota for the client.
// Returns a LimitExceededError when the quota is spent.
func (l *Limiter) Allow(ctx context.Context, clientID, action string, limit int) error {
	if limit <= 0 {
		return nil // unlimited
	}
	if l.rdb == nil {
		return nil
	}

	now := l.now().UTC()
	key := fmt.Sprintf("usage:%s:%s:%s", action, clientID, now.Format("2006-01-02"))

	used, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("Usage", "Redis unavailable, skipping quota check", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	reset := NextMidnightUTC(now)
	if used == 1 {
		if err := l.rdb.ExpireAt(ctx, key, reset).Err(); err != nil {
			l.logger.Warn("Usage", "Failed to set quota expiry", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	if int(used) > limit {
		return &LimitExceededError{
			Limit:      limit,
			Used:       int(used),
			ResetAfter: reset,
		}
	}

	return nil
}

// NextMidnightUTC returns the first instant of the next UTC day.
func NextMidnightUTC(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
