package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brandforgehq/brandforge/internal/pkg/env"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// SetupCache connects the shared Redis client. Generation status and billing
// webhook dedupe keys live in this DB; sessions and OAuth state use their own.
func SetupCache() {
	db, err := strconv.Atoi(env.GetEnv("CACHE_DB", "0"))
	if err != nil {
		db = 0
	}

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", env.GetEnv("CACHE_HOST", "localhost"), env.GetEnv("CACHE_PORT", "6379")),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: could not connect to Redis cache: %v", err)
		return
	}
	log.Println("Connected to Redis cache")
}

// GetClient returns the shared Redis client, connecting lazily if needed.
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

func Set(key string, value interface{}, expiration time.Duration) error {
	return GetClient().Set(ctx, key, value, expiration).Err()
}

func Get(key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}

func Delete(key string) error {
	return GetClient().Del(ctx, key).Err()
}
