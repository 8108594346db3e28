package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
)

func TestMemoryLocker(t *testing.T) {
	ctx := context.Background()
	locker := NewMemoryLocker()

	unlock, ok, err := locker.TryLock(ctx, "123")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locker.TryLock(ctx, "123")
	require.NoError(t, err)
	assert.False(t, ok, "a mesma conta não pode ser travada duas vezes")

	_, ok, err = locker.TryLock(ctx, "456")
	require.NoError(t, err)
	assert.True(t, ok, "outra conta trava normalmente")

	require.NoError(t, unlock(ctx))
	assert.ErrorIs(t, unlock(ctx), ErrLockNotHeld)

	_, ok, err = locker.TryLock(ctx, "123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLockerConcurrent(t *testing.T) {
	ctx := context.Background()
	locker := NewMemoryLocker()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := locker.TryLock(ctx, "123"); ok {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, acquired)
}

func TestNewLocker(t *testing.T) {
	t.Run("redis desligado usa memória", func(t *testing.T) {
		locker := NewLocker(context.Background(), config.Redis{Enabled: false})
		assert.IsType(t, &MemoryLocker{}, locker)
	})

	t.Run("redis inacessível cai para memória", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		locker := NewLocker(ctx, config.Redis{Enabled: true, Addr: "127.0.0.1:1", LockTTL: time.Minute})
		assert.IsType(t, &MemoryLocker{}, locker)
	})
}
