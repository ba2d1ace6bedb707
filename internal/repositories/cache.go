package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"realtychance/internal/config"
	"realtychance/internal/models"

	"github.com/redis/go-redis/v9"
)

var (
	RedisCtx        = context.Background()
	RedisClient     *redis.Client
	cacheUserHits   int64
	cacheUserMisses int64
)

// InitRedis initializes the global Redis client. The user repository uses it
// to cache user rows keyed by id, email and phone. With REDIS_ENABLED=false
// the client stays nil and every cache path degrades to the database.
func InitRedis() {
	if !config.GetBoolEnv("REDIS_ENABLED", true) {
		log.Println("Redis disabled by configuration, user caching off")
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     config.GetEnv("REDIS_HOST", "localhost") + ":" + config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})

	if _, err := RedisClient.Ping(RedisCtx).Result(); err != nil {
		log.Printf("Redis unavailable, user caching disabled: %v", err)
		RedisClient = nil
		return
	}
	log.Println("Redis connection verified")
}

func GetUserCacheKeyByID(userID uint) string {
	return fmt.Sprintf("user:id:%d", userID)
}

func GetUserCacheKeyByEmail(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

func GetUserCacheKeyByPhone(phone string) string {
	return fmt.Sprintf("user:phone:%s", phone)
}

const userCacheTTL = 24 * time.Hour

// CacheUser stores a user row under all of its lookup keys.
func CacheUser(user *models.User) {
	if RedisClient == nil || user == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		log.Printf("failed to marshal user %d for cache: %v", user.ID, err)
		return
	}
	keys := []string{GetUserCacheKeyByID(user.ID)}
	if user.Email != "" {
		keys = append(keys, GetUserCacheKeyByEmail(user.Email))
	}
	if user.Phone != "" {
		keys = append(keys, GetUserCacheKeyByPhone(user.Phone))
	}
	for _, key := range keys {
		if err := RedisClient.Set(RedisCtx, key, data, userCacheTTL).Err(); err != nil {
			log.Printf("failed to cache user under %s: %v", key, err)
		}
	}
}

// GetCachedUser returns a cached user row for the given key, or nil on miss.
func GetCachedUser(key string) *models.User {
	if RedisClient == nil {
		return nil
	}
	data, err := RedisClient.Get(RedisCtx, key).Bytes()
	if err != nil {
		atomic.AddInt64(&cacheUserMisses, 1)
		return nil
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		atomic.AddInt64(&cacheUserMisses, 1)
		return nil
	}
	atomic.AddInt64(&cacheUserHits, 1)
	return &user
}

// InvalidateUserCache drops every cache key for the user. Called on any user
// mutation, role promotion included.
func InvalidateUserCache(userID uint) {
	if RedisClient == nil {
		return
	}
	keys := []string{GetUserCacheKeyByID(userID)}

	var user models.User
	if err := DB.Unscoped().First(&user, userID).Error; err == nil {
		if user.Email != "" {
			keys = append(keys, GetUserCacheKeyByEmail(user.Email))
		}
		if user.Phone != "" {
			keys = append(keys, GetUserCacheKeyByPhone(user.Phone))
		}
	}

	if err := RedisClient.Del(RedisCtx, keys...).Err(); err != nil {
		log.Printf("failed to invalidate cache for user %d: %v", userID, err)
	}
}

// ClearAllCaches flushes Redis. Used on server startup.
func ClearAllCaches() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.FlushAll(RedisCtx).Err()
}

// GetCacheStats returns hit/miss counters for the user cache.
func GetCacheStats() map[string]interface{} {
	hits := atomic.LoadInt64(&cacheUserHits)
	misses := atomic.LoadInt64(&cacheUserMisses)
	total := hits + misses
	ratio := 0.0
	if total > 0 {
		ratio = float64(hits) / float64(total) * 100
	}
	return map[string]interface{}{
		"hits":   hits,
		"misses": misses,
		"ratio":  ratio,
	}
}
