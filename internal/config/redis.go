package config

import (
	"context"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// InitRedis builds the Redis client used for display-board fan-out and
// verifies the connection.
func InitRedis(ctx context.Context) (*redis.Client, error) {
	db, err := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	if err != nil {
		db = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     GetEnv("REDIS_ADDR", "127.0.0.1:6379"),
		Password: GetEnv("REDIS_PASSWORD", ""),
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Println("Redis connected (DB", db, ")")
	return client, nil
}
