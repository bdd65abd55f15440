package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "greenchem:report:"

// RedisStore Redis 報告暫存
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// RedisOptions Redis 連線參數
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore 創建 Redis 暫存並測試連線
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    opts.TTL,
	}, nil
}

// Save 序列化後寫入 Redis
func (s *RedisStore) Save(ctx context.Context, r *Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := s.client.Set(ctx, s.key(r.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Get 從 Redis 讀取報告
func (s *RedisStore) Get(ctx context.Context, id string) (*Report, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.misses.Add(1)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	s.hits.Add(1)
	return &r, nil
}

// Stats 回傳命中統計與目前報告數量。
// 報告數量以 SCAN 逐批計算，只供 /health 使用，就緒檢查改用 Ping。
func (s *RedisStore) Stats(ctx context.Context) Stats {
	hits, misses := s.hits.Load(), s.misses.Load()
	stats := Stats{
		Driver:   "redis",
		Size:     -1,
		Hits:     hits,
		Misses:   misses,
		HitRatio: hitRatio(hits, misses),
	}

	var cursor uint64
	count := 0
	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return stats
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	stats.Size = count
	return stats
}

// Ping 檢查 Redis 連線
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return redisKeyPrefix + id
}
