// File: utils/cache.go
package utils

import (
	"bookingportal/config"
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ClientStateClient backs the short-lived, tab-scoped values (verification token, drafts).
// The portal owns no other data, so one client on its own DB index serves the store
// and the health monitor; sessions and users stay with the remote API.
var ClientStateClient *redis.Client

// InitClientStateCache connects to REDIS_ADDR on REDIS_CLIENT_STATE_DB and exits the
// process when Redis is unreachable at startup.
func InitClientStateCache() {
	ClientStateClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisClientStateDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ClientStateClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Client State): %v", err)
	}
}

// GetClientStateClient returns the client state Redis client.
func GetClientStateClient() *redis.Client {
	if ClientStateClient == nil {
		InitClientStateCache()
	}
	return ClientStateClient
}
