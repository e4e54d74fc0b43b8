package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dboiago/Memoix-sub000/internal/model"
)

// shareTTL is how long a share link stays redeemable.
const shareTTL = 7 * 24 * time.Hour

// ShareService hands recipes to other users: it stores the shareable JSON
// projection of a recipe in Redis under a one-off token, so the link works
// even after the owner edits or deletes the original.
type ShareService struct {
	redis *redis.Client
}

// NewShareService creates a new ShareService instance
func NewShareService(redisClient *redis.Client) *ShareService {
	return &ShareService{redis: redisClient}
}

// CreateShare snapshots the recipe's shareable export and returns the token
// that redeems it.
func (s *ShareService) CreateShare(ctx context.Context, recipe *model.Recipe) (string, error) {
	data, err := recipe.ShareableJSON()
	if err != nil {
		return "", fmt.Errorf("failed to build shareable export: %w", err)
	}

	token := uuid.New().String()
	key := fmt.Sprintf("recipe:share:%s", token)
	if err := s.redis.Set(ctx, key, data, shareTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to save share to Redis: %w", err)
	}

	return token, nil
}

// GetShare redeems a share token for the stored recipe export.
func (s *ShareService) GetShare(ctx context.Context, token string) ([]byte, error) {
	key := fmt.Sprintf("recipe:share:%s", token)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get share from Redis: %w", err)
	}
	return data, nil
}

// DeleteShare revokes a share token.
func (s *ShareService) DeleteShare(ctx context.Context, token string) error {
	key := fmt.Sprintf("recipe:share:%s", token)
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete share from Redis: %w", err)
	}
	return nil
}
