package jwt

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Blocklist is an in-memory storage of tokens that should be
// immediately invalidated by the server-side.
// The most common way to invalidate a token, e.g. on user logout,
// is to make the client-side remove the token itself.
//
// See the blocklist/redis sub-package for a blocklist shared between processes.
type Blocklist struct {
	entries map[string]float64 // key = token | value = expiration unix seconds (to remove expired).
	mu      sync.RWMutex
}

var _ TokenValidator = (*Blocklist)(nil)

// NewBlocklist returns a new up and running in-memory Token Blocklist.
// It accepts the clear every "x" duration. Indeed, this duration
// can match the usual tokens expiration one.
//
// A blocklist implements the `TokenValidator` interface.
func NewBlocklist(gcEvery time.Duration) *Blocklist {
	return NewBlocklistContext(context.Background(), gcEvery)
}

// NewBlocklistContext same as `NewBlocklist`
// but it also accepts a standard Go Context for GC cancelation.
func NewBlocklistContext(ctx context.Context, gcEvery time.Duration) *Blocklist {
	b := &Blocklist{
		entries: make(map[string]float64),
	}

	if gcEvery > 0 {
		go b.runGC(ctx, gcEvery)
	}

	return b
}

// ValidateToken completes the `TokenValidator` interface.
// Returns ErrBlocked if the "token" was blocked by this Blocklist.
func (b *Blocklist) ValidateToken(token string, _ Claims, err error) error {
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			b.Del(token)
		}

		return err // respect the previous error.
	}

	if b.Has(token) {
		return ErrBlocked
	}

	return nil
}

// InvalidateToken invalidates a verified JWT token.
// It adds the token, together with its claims as returned by Verify, to this blocklist.
// Next verification will be blocked, even if the token was not yet expired.
// Tokens without an "exp" claim stay blocked until Del is called.
func (b *Blocklist) InvalidateToken(token string, claims Claims) {
	exp, ok := claims.Expiry()
	if !ok {
		exp = -1
	}

	b.mu.Lock()
	b.entries[token] = exp
	b.mu.Unlock()
}

// Del removes a "token" from the blocklist.
func (b *Blocklist) Del(token string) {
	b.mu.Lock()
	delete(b.entries, token)
	b.mu.Unlock()
}

// Count returns the total amount of blocked tokens.
func (b *Blocklist) Count() int {
	b.mu.RLock()
	n := len(b.entries)
	b.mu.RUnlock()

	return n
}

// Has reports whether the given "token" is blocked by the server.
func (b *Blocklist) Has(token string) bool {
	if token == "" {
		return false
	}

	b.mu.RLock()
	_, ok := b.entries[token]
	b.mu.RUnlock()

	return ok
}

// GC iterates over all entries and removes expired tokens.
// This method is helpful to keep the list size small.
// Depending on the application, the GC method can be scheduled
// to called every half or a whole hour.
// A good value for a GC cron task is the Token's max age.
func (b *Blocklist) GC() int {
	now := unixSeconds(Clock())

	b.mu.Lock()
	n := 0
	for token, expiry := range b.entries {
		if expiry >= 0 && now >= expiry {
			delete(b.entries, token)
			n++
		}
	}
	b.mu.Unlock()

	return n
}

func (b *Blocklist) runGC(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)

	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
			b.GC()
		}
	}
}
