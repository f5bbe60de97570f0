package infrastructure

import (
	"sync"

	"golang.org/x/time/rate"
)

// SenderLimiter caps completion calls per sender so one chatty user
// cannot monopolize the completion API.
type SenderLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

func NewSenderLimiter(r rate.Limit, burst int) *SenderLimiter {
	return &SenderLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        burst,
	}
}

// Allow reports whether the sender may trigger another completion now.
func (l *SenderLimiter) Allow(senderID string) bool {
	l.mu.Lock()
	limiter, exists := l.limiters[senderID]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[senderID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
