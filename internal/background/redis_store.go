package background

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/internal/logging"
)

const taskKeyPrefix = "task:extract:"

// RedisTaskStore persists task results in Redis so async task state survives
// process restarts. Entries expire after the configured max task age.
type RedisTaskStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisTaskStore connects to Redis using the configured URL.
func NewRedisTaskStore(cfg *config.Config) (*RedisTaskStore, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisTaskStore{
		client: client,
		ttl:    cfg.BackgroundTasks.MaxTaskAge,
		logger: logging.GetGlobalLogger().WithField("component", "redis_task_store"),
	}, nil
}

func taskKey(processID string) string {
	return taskKeyPrefix + processID
}

// Store records a task result with the configured TTL.
func (s *RedisTaskStore) Store(ctx context.Context, result *TaskResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal task result: %w", err)
	}

	if err := s.client.Set(ctx, taskKey(result.ProcessID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store task result: %w", err)
	}
	return nil
}

// Get retrieves a task result by process ID.
func (s *RedisTaskStore) Get(ctx context.Context, processID string) (*TaskResult, error) {
	payload, err := s.client.Get(ctx, taskKey(processID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task result: %w", err)
	}

	var result TaskResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task result: %w", err)
	}
	return &result, nil
}

// Update overwrites an existing task result, preserving the remaining TTL.
func (s *RedisTaskStore) Update(ctx context.Context, result *TaskResult) error {
	key := taskKey(result.ProcessID)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check task existence: %w", err)
	}
	if exists == 0 {
		return ErrTaskNotFound
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal task result: %w", err)
	}
	if err := s.client.Set(ctx, key, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to update task result: %w", err)
	}
	return nil
}

// Delete removes a task result.
func (s *RedisTaskStore) Delete(ctx context.Context, processID string) error {
	deleted, err := s.client.Del(ctx, taskKey(processID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete task result: %w", err)
	}
	if deleted == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Cleanup is a no-op for Redis; key TTLs handle expiry.
func (s *RedisTaskStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	return nil
}

// List returns all stored task results.
func (s *RedisTaskStore) List(ctx context.Context) ([]*TaskResult, error) {
	var results []*TaskResult
	iter := s.client.Scan(ctx, 0, taskKeyPrefix+"*", 100).Iterator()

	for iter.Next(ctx) {
		payload, err := s.client.Get(ctx, iter.Val()).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get task result: %w", err)
		}

		var result TaskResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			s.logger.Warn("Skipping undecodable task result", map[string]interface{}{
				"key":   iter.Val(),
				"error": err.Error(),
			})
			continue
		}
		results = append(results, &result)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan task results: %w", err)
	}

	return results, nil
}

// Close closes the Redis connection.
func (s *RedisTaskStore) Close() error {
	return s.client.Close()
}

// IsHealthy checks the Redis connection.
func (s *RedisTaskStore) IsHealthy(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
