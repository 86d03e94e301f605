package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log"
	"time"

	"maharashtra-guide/models"

	"github.com/redis/go-redis/v9"
)

const userKeyPrefix = "user:"

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}

// RedisUserCache caches public user records as JSON under "user:<id>".
// Password fields are never serialised, so cached copies are only fit for
// read endpoints.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisUserCache(client *redis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{client: client, ttl: ttl}
}

func (c *RedisUserCache) Get(ctx context.Context, id string) (*models.User, bool) {
	userJSON, err := c.client.Get(ctx, userKeyPrefix+id).Result()
	if err != nil {
		if !stderrors.Is(err, redis.Nil) {
			log.Printf("Redis get error for user %s: %v", id, err)
		}
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		log.Printf("Failed to unmarshal cached user %s: %v", id, err)
		return nil, false
	}
	return &user, true
}

func (c *RedisUserCache) Set(ctx context.Context, user models.User) {
	userJSON, err := json.Marshal(user)
	if err != nil {
		log.Printf("Failed to marshal user %s for cache: %v", user.ID, err)
		return
	}
	if err := c.client.Set(ctx, userKeyPrefix+user.ID, userJSON, c.ttl).Err(); err != nil {
		log.Printf("Redis set error for user %s: %v", user.ID, err)
	}
}

func (c *RedisUserCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, userKeyPrefix+id).Err(); err != nil {
		log.Printf("Redis delete error for user %s: %v", id, err)
	}
}
