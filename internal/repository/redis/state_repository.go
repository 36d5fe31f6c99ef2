package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matjib/matjib-backend/internal/domain"
	"github.com/matjib/matjib-backend/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const stateKeyPrefix = "oauth:state:"

type stateRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStateRepository создает хранилище одноразовых state-токенов OAuth
func NewStateRepository(client *redis.Client, logger *zap.Logger) repository.StateRepository {
	return &stateRepository{
		client: client,
		logger: logger,
	}
}

// Save сохраняет state с метаданными на время TTL
func (r *stateRepository) Save(ctx context.Context, state string, meta domain.OAuthStateMeta, ttl time.Duration) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal state meta: %w", err)
	}

	if err := r.client.Set(ctx, stateKeyPrefix+state, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to save oauth state", zap.Error(err))
		return fmt.Errorf("failed to save oauth state: %w", err)
	}

	r.logger.Debug("OAuth state saved",
		zap.String("provider", meta.Provider),
		zap.Duration("ttl", ttl))
	return nil
}

// Consume атомарно извлекает и удаляет state (GETDEL). Повторное
// использование того же state невозможно. Отсутствующий state - nil без ошибки.
func (r *stateRepository) Consume(ctx context.Context, state string) (*domain.OAuthStateMeta, error) {
	data, err := r.client.GetDel(ctx, stateKeyPrefix+state).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to consume oauth state", zap.Error(err))
		return nil, fmt.Errorf("failed to consume oauth state: %w", err)
	}

	var meta domain.OAuthStateMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state meta: %w", err)
	}

	return &meta, nil
}
