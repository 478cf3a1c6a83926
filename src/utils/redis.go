package utils

import (
	"context"
	"encoding/json"
	"time"

	DB "Backend-Dhriti-AI/src/database"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// ensureClient returns the shared Redis client managed by the database package.
// If the database package didn't initialize Redis, this will return nil and
// callers should handle that case (they already do).
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// CacheJSON เก็บ value เป็น JSON ใน Redis พร้อม TTL
// Returns nil if Redis is not available (development mode)
func CacheJSON(key string, value interface{}, ttl time.Duration) error {
	client := ensureClient()
	if client == nil {
		// ไม่มี Redis ใน dev mode - ข้าม
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(Ctx, key, raw, ttl).Err()
}

// GetCachedJSON อ่านค่า JSON จาก Redis ลง dest
// คืน false ถ้าไม่มี key หรือไม่มี Redis
func GetCachedJSON(key string, dest interface{}) (bool, error) {
	client := ensureClient()
	if client == nil {
		return false, nil
	}

	raw, err := client.Get(Ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// InvalidateCache ลบ key ออกจาก cache (เช่นหลัง import batch ใหม่)
func InvalidateCache(keys ...string) {
	client := ensureClient()
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(Ctx, keys...)
}
