package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/common"
)

type window struct {
	count   int
	started time.Time
}

// RateLimiter is a fixed-window counter keyed by client IP, held in process
// memory. State is not persisted and resets on restart.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	span    time.Duration
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

func NewRateLimiter(max int, span time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		max:     max,
		span:    span,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Allow records one hit for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.started) >= rl.span {
		rl.windows[key] = &window{count: 1, started: now}
		return true
	}
	w.count++
	return w.count <= rl.max
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.span)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, w := range rl.windows {
				if now.Sub(w.started) >= rl.span {
					delete(rl.windows, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			common.Fail(c, http.StatusTooManyRequests, 42900, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
