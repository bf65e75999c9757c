package database

import (
	"context"
	"fmt"
	"log"

	"clinrec-service/internal/app/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the redis instance holding login sessions.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password: driverConfig.Redis.Password,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Could not connect to the session store: %v", err)
	}
	log.Println("Successfully connected to the session store")
	return rdb
}
