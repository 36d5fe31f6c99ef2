package repository

import (
	"context"

	"github.com/matjib/matjib-backend/internal/domain"
)

// AuthRepository определяет методы входа по email/паролю (Supabase GoTrue)
type AuthRepository interface {
	// SignIn выполняет вход и возвращает сессию
	SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error)

	// SignUp регистрирует нового пользователя
	SignUp(ctx context.Context, email, password string) (*domain.AuthSession, error)
}
