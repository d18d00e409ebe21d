package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// groupExchangeRate is how often a user regains a group exchange command.
	groupExchangeRate = 10 * time.Second

	// groupExchangeBurst is how many group exchange commands a user can run at once.
	groupExchangeBurst = 3
)

type userBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// userLimiter is a token bucket per user. Buckets of users that have been idle long enough to refill completely are
// dropped, a new bucket for them behaves the same.
type userLimiter struct {
	mut       sync.Mutex
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
	buckets   map[string]*userBucket
}

func newUserLimiter(interval time.Duration, burst int) *userLimiter {
	return &userLimiter{
		every:   rate.Every(interval),
		burst:   burst,
		idle:    interval * time.Duration(burst),
		now:     time.Now,
		buckets: make(map[string]*userBucket),
	}
}

// Allow reports whether the user may run a command now, consuming a token if so.
func (l *userLimiter) Allow(userID string) bool {
	l.mut.Lock()
	defer l.mut.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[userID]
	if !ok {
		b = &userBucket{lim: rate.NewLimiter(l.every, l.burst)}
		l.buckets[userID] = b
	}
	b.lastSeen = now

	return b.lim.AllowN(now, 1)
}

// sweep drops idle buckets, at most once per idle period.
func (l *userLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	l.lastSweep = now

	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idle {
			delete(l.buckets, id)
		}
	}
}

// size is the number of tracked users.
func (l *userLimiter) size() int {
	l.mut.Lock()
	defer l.mut.Unlock()
	return len(l.buckets)
}
