package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const linkKeyPrefix = "account_link:"

// ErrLinkNotFound is returned when a user has no stored account link
var ErrLinkNotFound = errors.New("account link not found")

// Config holds configuration for the Redis account repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed account repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveLink persists an account link to Redis
func (r *redisRepository) SaveLink(ctx context.Context, input *SaveLinkInput) error {
	if input == nil || input.Link == nil {
		return errors.New("input and link cannot be nil")
	}

	link := input.Link
	if link.UserID == "" {
		return errors.New("user ID cannot be empty")
	}
	if link.RefreshToken == "" {
		return errors.New("refresh token cannot be empty")
	}

	linkJSON, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	key := linkKeyPrefix + link.UserID
	if err := r.client.Set(ctx, key, linkJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}

	return nil
}

// GetLink retrieves an account link by user ID from Redis
func (r *redisRepository) GetLink(ctx context.Context, input *GetLinkInput) (*Link, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	key := linkKeyPrefix + input.UserID
	linkJSON, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	var link Link
	if err := json.Unmarshal([]byte(linkJSON), &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link: %w", err)
	}

	return &link, nil
}

// DeleteLink removes an account link from Redis
func (r *redisRepository) DeleteLink(ctx context.Context, input *DeleteLinkInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	key := linkKeyPrefix + input.UserID
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	if deleted == 0 {
		return ErrLinkNotFound
	}

	return nil
}
