package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_SerializesSameFacility(t *testing.T) {
	l := NewLocalLocker()

	unlock, err := l.Lock(context.Background(), 1)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := l.Lock(context.Background(), 1)
		if err == nil {
			close(acquired)
			second()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first is held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock not acquired after unlock")
	}
}

func TestLocalLocker_IndependentFacilities(t *testing.T) {
	l := NewLocalLocker()

	unlock1, err := l.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer unlock1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	unlock2, err := l.Lock(ctx, 2)
	require.NoError(t, err)
	unlock2()
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker()

	unlock, err := l.Lock(context.Background(), 7)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, 7)
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestLocalLocker_UnlockTwice(t *testing.T) {
	l := NewLocalLocker()

	unlock, err := l.Lock(context.Background(), 3)
	require.NoError(t, err)
	unlock()
	unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	again, err := l.Lock(ctx, 3)
	require.NoError(t, err)
	again()
}

func TestLocalLocker_ReclaimsIdleSlots(t *testing.T) {
	l := NewLocalLocker()
	slots := func() int {
		l.mu.Lock()
		defer l.mu.Unlock()
		return len(l.slots)
	}

	unlock, err := l.Lock(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, 1)
	require.ErrorIs(t, err, ErrLockTimeout)
	assert.Equal(t, 1, slots(), "slot is kept while held")

	unlock()
	assert.Zero(t, slots())

	for id := int64(1); id <= 100; id++ {
		u, err := l.Lock(context.Background(), id)
		require.NoError(t, err)
		u()
	}
	assert.Zero(t, slots())
}

// fakeRedis хранит ключи в памяти и исполняет скрипт освобождения
type fakeRedis struct {
	redis.Scripter

	mu   sync.Mutex
	keys map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{keys: make(map[string]string)}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.keys[keys[0]] == args[0].(string) {
		delete(f.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestRedisLocker_LockAndRelease(t *testing.T) {
	client := newFakeRedis()
	l := NewRedisLocker(client, "amenity", time.Second, 5*time.Millisecond, nopLogger{})

	unlock, err := l.Lock(context.Background(), 4)
	require.NoError(t, err)
	assert.Contains(t, client.keys, "amenity:facility:4:lock")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, 4)
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	assert.NotContains(t, client.keys, "amenity:facility:4:lock")

	again, err := l.Lock(context.Background(), 4)
	require.NoError(t, err)
	again()
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	client := newFakeRedis()
	l := NewRedisLocker(client, "amenity", time.Second, 5*time.Millisecond, nopLogger{})

	unlock, err := l.Lock(context.Background(), 5)
	require.NoError(t, err)

	// Ключ истек и был захвачен другим экземпляром
	client.keys["amenity:facility:5:lock"] = "other-owner"
	unlock()

	assert.Equal(t, "other-owner", client.keys["amenity:facility:5:lock"])
}
