package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Limiter - то, что нужно middleware
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

const defaultKeyPrefix = "recruit:ratelimit"

var (
	ErrNoRedisAddr   = errors.New("ratelimit: redis address is empty")
	ErrNoRedisClient = errors.New("ratelimit: redis client is nil")
	ErrBadQuota      = errors.New("ratelimit: limit and window must be positive")
)

// FixedWindowLimiter - счетчик запросов на ключ в окне фиксированной длины.
// Квота общая для всех инстансов API, которые смотрят в один Redis.
type FixedWindowLimiter struct {
	scripter redis.Scripter
	// keyBase = <prefix>:<name>, имя разделяет квоты login и apply
	keyBase string
	limit   int64
	window  time.Duration
}

// NewRedisClient - один клиент на процесс, лимитеры его разделяют
func NewRedisClient(addr, password string) (*redis.Client, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, ErrNoRedisAddr
	}
	opts := &redis.Options{Addr: strings.TrimSpace(addr), Password: password}
	return redis.NewClient(opts), nil
}

func NewFixedWindowLimiter(scripter redis.Scripter, prefix, name string, limit int, window time.Duration) (*FixedWindowLimiter, error) {
	switch {
	case scripter == nil:
		return nil, ErrNoRedisClient
	case limit < 1, window <= 0:
		return nil, ErrBadQuota
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &FixedWindowLimiter{
		scripter: scripter,
		keyBase:  prefix + ":" + name,
		limit:    int64(limit),
		window:   window,
	}, nil
}

// Allow возвращает true, пока ключ укладывается в квоту.
// При ошибках Redis отказывает (fail closed).
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}

	windowMs := l.window.Milliseconds()
	if windowMs <= 0 {
		return true
	}
	windowSlot := time.Now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.keyBase, key, windowSlot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	res, err := fixedWindowScript.Run(ctx, l.scripter, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false
	}
	return res <= l.limit
}
