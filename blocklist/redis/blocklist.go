// Package redis provides a token blocklist stored in Redis, so that a token
// invalidated by one process is rejected by every process sharing the server.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwtcore/jwt"

	goredis "github.com/redis/go-redis/v9"
)

// Defaults for the zero fields of Options.
const (
	DefaultPrefix  = "jwt:blocklist:"
	DefaultTimeout = 3 * time.Second
)

// ErrUnavailable is returned by ValidateToken when the blocklist
// could not be queried. The token is rejected in that case.
var ErrUnavailable = errors.New("jwt/redis: blocklist unavailable")

// Options holds the Blocklist configuration.
type Options struct {
	// Prefix of every key written by the blocklist.
	// Defaults to DefaultPrefix.
	Prefix string
	// Timeout of a single lookup made by ValidateToken,
	// which has no context of its own. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Logger receives backend errors. Optional.
	Logger *slog.Logger
}

// Blocklist is a jwt.TokenValidator backed by Redis.
// Each blocked token is a key which expires together with the token,
// so there is nothing to garbage collect.
type Blocklist struct {
	client  goredis.UniversalClient
	prefix  string
	timeout time.Duration
	logger  *slog.Logger
}

var _ jwt.TokenValidator = (*Blocklist)(nil)

// New returns a new Redis Blocklist. The client is not closed by the blocklist.
//
// Usage:
//
//	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
//	blocklist := redis.New(client, redis.Options{})
//	claims, err := jwt.Verify(token, "HS256", key, blocklist)
func New(client goredis.UniversalClient, opts Options) *Blocklist {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Blocklist{
		client:  client,
		prefix:  opts.Prefix,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
}

// key hashes the token, a blocked token is never stored in clear.
func (b *Blocklist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return b.prefix + hex.EncodeToString(sum[:])
}

// ValidateToken completes the jwt.TokenValidator interface.
// It respects the previous error and returns jwt.ErrBlocked
// if the token was invalidated.
func (b *Blocklist) ValidateToken(token string, _ jwt.Claims, err error) error {
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	blocked, err := b.Has(ctx, token)
	if err != nil {
		b.logError("blocklist lookup failed", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if blocked {
		return jwt.ErrBlocked
	}

	return nil
}

// InvalidateToken blocks a verified token until its "exp" claim.
// Tokens without an "exp" claim stay blocked until Del is called.
// An already expired token is not stored.
func (b *Blocklist) InvalidateToken(ctx context.Context, token string, claims jwt.Claims) error {
	var ttl time.Duration
	if exp, ok := claims.Expiry(); ok {
		ttl = jwt.Timestamp(exp).Sub(jwt.Clock())
		if ttl <= 0 {
			return nil
		}
	}

	if err := b.client.Set(ctx, b.key(token), 1, ttl).Err(); err != nil {
		b.logError("blocklist write failed", err)
		return err
	}

	return nil
}

// Has reports whether the given "token" is blocked.
func (b *Blocklist) Has(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	n, err := b.client.Exists(ctx, b.key(token)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// Del removes a "token" from the blocklist.
func (b *Blocklist) Del(ctx context.Context, token string) error {
	return b.client.Del(ctx, b.key(token)).Err()
}

// Count returns the total amount of blocked tokens.
func (b *Blocklist) Count(ctx context.Context) (int64, error) {
	var (
		n      int64
		cursor uint64
	)

	for {
		keys, next, err := b.client.Scan(ctx, cursor, b.prefix+"*", 100).Result()
		if err != nil {
			return 0, err
		}

		n += int64(len(keys))
		if next == 0 {
			return n, nil
		}
		cursor = next
	}
}

func (b *Blocklist) logError(msg string, err error) {
	if b.logger == nil {
		return
	}

	b.logger.Error(msg, slog.String("prefix", b.prefix), slog.Any("error", err))
}
