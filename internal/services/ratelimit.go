package services

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	ips    map[string]*rate.Limiter
	mu     sync.RWMutex
	r      rate.Limit
	b      int
	logger *slog.Logger
}

func NewIPRateLimiter(r rate.Limit, b int, logger *slog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		ips:    make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
		logger: logger,
	}
}

// StartCleanup resets the limiter map when it grows past a bound so
// long-running processes do not accumulate one bucket per IP forever.
func (i *IPRateLimiter) StartCleanup(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			i.mu.Lock()
			if len(i.ips) > 10000 {
				i.logger.Info("Resetting rate limiter map", "count", len(i.ips))
				i.ips = make(map[string]*rate.Limiter)
			}
			i.mu.Unlock()
		}
	}()
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}

	return limiter
}
