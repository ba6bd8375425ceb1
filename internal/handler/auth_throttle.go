package handler

import (
	"sync"
	"time"
)

const (
	maxLoginFailures = 5
	loginLockout     = 10 * time.Minute
)

// loginThrottle counts consecutive failed logins per username and
// refuses further attempts once the cap is reached, until the lockout
// window passes or a successful login resets the count. It holds the
// cap even when the Redis rate limiter is unavailable.
type loginThrottle struct {
	mu   sync.Mutex
	now  func() time.Time
	hits map[string]loginFailures
}

type loginFailures struct {
	count int
	last  time.Time
}

func newLoginThrottle() *loginThrottle {
	return &loginThrottle{now: time.Now, hits: make(map[string]loginFailures)}
}

// locked reports whether username has exhausted its attempts.
func (t *loginThrottle) locked(username string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.hits[username]
	if !ok || f.count < maxLoginFailures {
		return false
	}
	if t.now().Sub(f.last) >= loginLockout {
		delete(t.hits, username)
		return false
	}
	return true
}

// failure records one failed attempt for username.
func (t *loginThrottle) failure(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.hits[username]
	f.count++
	f.last = t.now()
	t.hits[username] = f
}

// success clears the failure count for username.
func (t *loginThrottle) success(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.hits, username)
}
