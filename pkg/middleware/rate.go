// Package middleware provides the store's HTTP middleware stack.
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// visitor is the request counter for one client IP within the current window.
type visitor struct {
	mu        sync.Mutex
	seen      int
	windowEnd time.Time
}

func (v *visitor) take(limit int, window time.Duration) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if time.Now().After(v.windowEnd) {
		v.seen = 0
		v.windowEnd = time.Now().Add(window)
	}
	v.seen++
	return v.seen <= limit
}

var (
	visitorsMu sync.Mutex
	visitors   = map[string]*visitor{}
)

func init() {
	// Sweep stale visitors once a minute so the map cannot grow without
	// bound on a long-running server.
	go func() {
		for range time.Tick(time.Minute) {
			cutoff := time.Now()
			visitorsMu.Lock()
			for ip, v := range visitors {
				v.mu.Lock()
				stale := cutoff.After(v.windowEnd)
				v.mu.Unlock()
				if stale {
					delete(visitors, ip)
				}
			}
			visitorsMu.Unlock()
		}
	}()
}

func visitorFor(ip string) *visitor {
	visitorsMu.Lock()
	defer visitorsMu.Unlock()

	v, ok := visitors[ip]
	if !ok {
		v = &visitor{windowEnd: time.Now().Add(time.Minute)}
		visitors[ip] = v
	}
	return v
}

// RateLimit caps each client IP at limit requests per window and answers
// excess requests with a 429. The X-Forwarded-For header, when present,
// identifies the client behind a proxy.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}

			if !visitorFor(ip).take(limit, window) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"message":"Too Many Requests"}`)) //nolint:errcheck
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
