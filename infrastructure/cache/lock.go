package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
)

const lockPrefix = "adstats:lock:"

var ErrLockNotHeld = errors.New("lock não pertence a este processo")

// Unlock libera um lock obtido por TryLock
type Unlock func(ctx context.Context) error

// Locker impede duas sincronizações simultâneas da mesma conta. É um mutex de
// melhor esforço: o TTL libera o lock de um processo que morreu no meio.
type Locker interface {
	TryLock(ctx context.Context, key string) (Unlock, bool, error)
	Close() error
}

// só apaga a chave se ela ainda guarda o token de quem travou
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(ctx context.Context, cfg config.Redis) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar no redis: %w", err)
	}

	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}

	return &RedisLocker{client: client, ttl: ttl}, nil
}

func (l *RedisLocker) TryLock(ctx context.Context, key string) (Unlock, bool, error) {
	token := uuid.NewString()
	redisKey := lockPrefix + key

	acquired, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis setnx: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		released, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
		if err != nil {
			return fmt.Errorf("erro ao liberar lock %s: %w", key, err)
		}
		if released == 0 {
			return ErrLockNotHeld
		}
		return nil
	}

	return unlock, true, nil
}

func (l *RedisLocker) Close() error {
	return l.client.Close()
}

// MemoryLocker vale só dentro do processo; usado quando o redis está desligado
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]string)}
}

func (l *MemoryLocker) TryLock(_ context.Context, key string) (Unlock, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, false, nil
	}

	token := uuid.NewString()
	l.held[key] = token

	unlock := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()

		if l.held[key] != token {
			return ErrLockNotHeld
		}
		delete(l.held, key)
		return nil
	}

	return unlock, true, nil
}

func (l *MemoryLocker) Close() error {
	return nil
}

// NewLocker usa o redis quando habilitado e cai para o lock em memória se ele não responder
func NewLocker(ctx context.Context, cfg config.Redis) Locker {
	if !cfg.Enabled {
		return NewMemoryLocker()
	}

	locker, err := NewRedisLocker(ctx, cfg)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"redis_addr": cfg.Addr,
			"error":      err.Error(),
		}).Warn("Redis indisponível, usando lock em memória")
		return NewMemoryLocker()
	}

	return locker
}
