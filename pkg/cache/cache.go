// Package cache fronts Redis for read-side caching of hot lists, the
// product catalogue above all. The store must keep working without Redis,
// so every helper silently no-ops while RDB is nil.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/kashvi-store/config"
)

// RDB is the shared client. It stays nil when Connect fails, which switches
// the package into pass-through mode.
var RDB *redis.Client

var ctx = context.Background()

// Connect dials Redis and pings it once. A failed ping leaves RDB nil and
// returns the error; the caller decides whether that is fatal.
func Connect() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis ping: %w", err)
	}

	RDB = client
	return nil
}

// Get loads key into dest and reports whether it was a hit. Misses,
// decode failures and a missing Redis all read as a plain miss.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	raw, err := RDB.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key for ttl.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(ctx, key, raw, ttl).Err()
}

// Del drops the given keys.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}

// Forget invalidates a single key.
func Forget(key string) error { return Del(key) }
