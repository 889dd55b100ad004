package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

// redisHistoryLimit caps the history list kept per key.
const redisHistoryLimit = 100

// RedisKV is the Redis backend. For each key K it keeps the value under K, a
// monotonic write counter under K:revision and recent writes under K:history.
type RedisKV struct {
	client *redis.Client
	now    func() time.Time
}

// OpenRedis connects to a Redis server and verifies it answers.
func OpenRedis(addr, password string, db int) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping().Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisKV(client), nil
}

// NewRedisKV wraps an existing client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client, now: time.Now}
}

// Close closes the client.
func (r *RedisKV) Close() error {
	return r.client.Close()
}

// Get returns the value under key.
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.WithContext(ctx).Get(key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Put replaces the value under key and records the write.
func (r *RedisKV) Put(ctx context.Context, key, value string) (int64, error) {
	c := r.client.WithContext(ctx)

	rev, err := c.Incr(revisionKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("put %q: revision: %w", key, err)
	}

	entry, err := json.Marshal(HistoryEntry{
		Revision:  rev,
		Value:     value,
		WrittenAt: r.now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("put %q: %w", key, err)
	}

	_, err = c.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.Set(key, value, 0)
		pipe.LPush(historyKey(key), string(entry))
		pipe.LTrim(historyKey(key), 0, redisHistoryLimit-1)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("put %q: %w", key, err)
	}
	return rev, nil
}

// Delete removes key. The revision counter and history are kept.
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.WithContext(ctx).Del(key).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Revision returns the current revision of key, 0 if the key is absent.
func (r *RedisKV) Revision(ctx context.Context, key string) (int64, error) {
	c := r.client.WithContext(ctx)
	n, err := c.Exists(key).Result()
	if err != nil {
		return 0, fmt.Errorf("revision %q: %w", key, err)
	}
	if n == 0 {
		return 0, nil
	}
	rev, err := c.Get(revisionKey(key)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("revision %q: %w", key, err)
	}
	return rev, nil
}

// History returns recent writes to key, newest first.
func (r *RedisKV) History(ctx context.Context, key string, limit int) ([]HistoryEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	items, err := r.client.WithContext(ctx).LRange(historyKey(key), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("history %q: %w", key, err)
	}

	entries := make([]HistoryEntry, 0, len(items))
	for _, item := range items {
		var e HistoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("history %q: %w", key, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func revisionKey(key string) string { return key + ":revision" }
func historyKey(key string) string  { return key + ":history" }
