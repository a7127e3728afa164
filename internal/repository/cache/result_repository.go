package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/site-analysis-service/internal/domain/repository"
)

type resultRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewResultRepository stores annotated analysis results under a TTL so they
// stay downloadable for a while without being durably persisted.
func NewResultRepository(redis *Redis) repository.ResultRepository {
	return &resultRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func resultKey(id string) string {
	return fmt.Sprintf("analysis:result:%s", id)
}

func (r *resultRepository) SaveResult(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	key := resultKey(id)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to store analysis result", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("result set error: %w", err)
	}

	r.logger.Debug("Analysis result stored",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.Duration("ttl", ttl),
	)
	return nil
}

func (r *resultRepository) GetResult(ctx context.Context, id string) ([]byte, error) {
	key := resultKey(id)
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to read analysis result", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("result get error: %w", err)
	}

	r.logger.Debug("Analysis result hit", zap.String("key", key))
	return val, nil
}
