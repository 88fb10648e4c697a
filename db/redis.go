package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const (
	// LatestAnalysisKey holds the most recent cycle result so downstream
	// services can read it without hitting Postgres.
	LatestAnalysisKey = "marketmood:analysis:latest"

	latestAnalysisTTL = 24 * time.Hour
)

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// PublishLatestAnalysis stores the serialized result of the most recent
// successful cycle. A nil client means Redis is not configured; callers
// treat that as a no-op.
func PublishLatestAnalysis(ctx context.Context, payload string) error {
	if Redis == nil {
		return nil
	}
	return Redis.Set(ctx, LatestAnalysisKey, payload, latestAnalysisTTL).Err()
}

// GetLatestAnalysis returns the cached latest result, or "" when nothing
// has been published yet.
func GetLatestAnalysis(ctx context.Context) (string, error) {
	if Redis == nil {
		return "", nil
	}
	val, err := Redis.Get(ctx, LatestAnalysisKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}
