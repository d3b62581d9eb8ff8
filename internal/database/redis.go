package database

import (
	"context"
	"fmt"
	"protest-tracker/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns nil, nil when Redis is disabled in config.
func InitRedis(config *config.RedisConfig) (*redis.Client, error) {
	if !config.Enabled {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password:    config.Password,
		DB:          config.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}
