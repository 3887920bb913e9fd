// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package devserver

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter applies a token-bucket rate limit per client address.
type ipLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucketEntry
	rps      rate.Limit
	burst    int
	lastSeen time.Duration
	done     chan struct{}
}

type bucketEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

// newIPLimiter allows rps requests per second with the given burst.
// The quiet-bucket sweeper starts with start and runs until stop.
func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		buckets:  make(map[string]*bucketEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
		lastSeen: 10 * time.Minute,
		done:     make(chan struct{}),
	}
}

func (l *ipLimiter) start() {
	go l.sweep()
}

func (l *ipLimiter) stop() {
	close(l.done)
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.buckets[ip]
	if !ok {
		entry = &bucketEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = entry
	}
	entry.seen = time.Now()
	return entry.limiter
}

// sweep drops buckets for addresses that have gone quiet.
func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			for ip, entry := range l.buckets {
				if time.Since(entry.seen) > l.lastSeen {
					delete(l.buckets, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

// middleware rejects callers that exceed their budget with 429.
func (l *ipLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.get(clientIP(r)).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
