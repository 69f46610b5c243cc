package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"student_dashboard_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

const statsKeyPrefix = "quiz:stats:"

// RedisStatsCache stores quiz statistics as JSON strings with a TTL.
type RedisStatsCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewRedisStatsCache(rdb *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisStatsCache{Redis: rdb, TTL: ttl}
}

func statsKey(quizID uint) string {
	return fmt.Sprintf("%s%d", statsKeyPrefix, quizID)
}

func (c *RedisStatsCache) Get(ctx context.Context, quizID uint) (*model.QuizStatistics, bool, error) {
	val, err := c.Redis.Get(ctx, statsKey(quizID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	var stats model.QuizStatistics
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, stats *model.QuizStatistics) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, statsKey(stats.QuizID), data, c.TTL).Err()
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, quizID uint) error {
	return c.Redis.Del(ctx, statsKey(quizID)).Err()
}
