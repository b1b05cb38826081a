package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrActionBusy = errors.New("action already in progress")

// ActionLock is a single-flight busy flag keyed by session and action. A
// second Acquire on a held key fails with ErrActionBusy; nothing is queued.
type ActionLock interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type memoryLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryLock() ActionLock {
	return &memoryLock{held: make(map[string]struct{})}
}

func (l *memoryLock) Acquire(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, ErrActionBusy
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}

// releaseScript deletes the key only while it still holds our token, so a
// lock that expired and was taken over is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type redisLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLock shares the busy flag across API replicas. ttl bounds how long a
// crashed holder can block the action.
func NewRedisLock(client *redis.Client, ttl time.Duration) ActionLock {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &redisLock{client: client, ttl: ttl}
}

func (l *redisLock) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := "resume:busy:" + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire action lock: %w", err)
	}
	if !ok {
		return nil, ErrActionBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the request context may already be done
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
				log.Printf("⚠️  Failed to release action lock %s: %v\n", redisKey, err)
			}
		})
	}, nil
}
