package supabaseauth

import (
	"context"
	"fmt"

	"github.com/matjib/matjib-backend/internal/config"
	"github.com/matjib/matjib-backend/internal/domain"
	"github.com/matjib/matjib-backend/internal/domain/repository"
	apperrors "github.com/matjib/matjib-backend/internal/pkg/errors"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

type client struct {
	sb     *supabase.Client
	logger *zap.Logger
}

// NewClient создает клиент Supabase GoTrue для входа по email/паролю
func NewClient(cfg *config.SupabaseConfig, logger *zap.Logger) (repository.AuthRepository, error) {
	sb, err := supabase.NewClient(cfg.URL, cfg.AnonKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &client{sb: sb, logger: logger}, nil
}

// SignIn выполняет вход по email/паролю. Ошибка от GoTrue (неверные
// учётные данные, неподтверждённый email) отдаётся как 401 без деталей.
func (c *client) SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	resp, err := c.sb.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		c.logger.Warn("Supabase sign-in failed", zap.String("email", email), zap.Error(err))
		return nil, apperrors.ErrLoginFailed
	}

	return &domain.AuthSession{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User:         resp.User,
	}, nil
}

// SignUp регистрирует нового пользователя. При включённом подтверждении
// email сессия в ответе пустая, заполнен только пользователь.
func (c *client) SignUp(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	resp, err := c.sb.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		c.logger.Warn("Supabase sign-up failed", zap.String("email", email), zap.Error(err))
		return nil, apperrors.ErrLoginFailed.WithMessage("회원가입에 실패했습니다.")
	}

	return &domain.AuthSession{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User:         resp.User,
	}, nil
}
