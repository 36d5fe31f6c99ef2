package repository

import (
	"context"
	"time"

	"github.com/matjib/matjib-backend/internal/domain"
)

// StateRepository - хранилище одноразовых state-токенов OAuth
type StateRepository interface {
	// Save сохраняет state с привязанными метаданными на время TTL
	Save(ctx context.Context, state string, meta domain.OAuthStateMeta, ttl time.Duration) error

	// Consume атомарно извлекает и удаляет state.
	// Возвращает nil без ошибки, если state не найден или уже использован.
	Consume(ctx context.Context, state string) (*domain.OAuthStateMeta, error)
}
