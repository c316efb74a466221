package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the cache client. Redis is optional; when REDIS_ADDR is
// unset or the server is unreachable, Client stays nil and the cache helpers
// degrade to no-ops.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, running without cache")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	_, err := client.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Failed to connect to Redis at %s, running without cache: %v", addr, err)
		return
	}

	Client = client
	fmt.Println("✅ Connected to Redis")
}

// GetCached returns the cached payload for a key, or "" on miss or when redis
// is not configured.
func GetCached(key string) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(Ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// SetCached stores a payload with a TTL. Best-effort; errors are ignored.
func SetCached(key, value string, ttl time.Duration) {
	if Client == nil {
		return
	}
	Client.Set(Ctx, key, value, ttl)
}

// InvalidatePrefix drops all cached keys under a prefix, used when a
// practitioner profile changes.
func InvalidatePrefix(prefix string) {
	if Client == nil {
		return
	}
	iter := Client.Scan(Ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(Ctx) {
		Client.Del(Ctx, iter.Val())
	}
}
