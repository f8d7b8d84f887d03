package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to the cache used by the checksession lookup. A failed
// ping is surfaced so the caller can choose to run without caching.
func InitRedis(addr string, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}
