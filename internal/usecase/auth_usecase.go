package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matjib/matjib-backend/internal/domain"
	"github.com/matjib/matjib-backend/internal/domain/repository"
	"github.com/matjib/matjib-backend/internal/pkg/errors"
	"github.com/matjib/matjib-backend/internal/usecase/dto"
)

// AuthUseCase - брокер логина: OAuth2-провайдеры (Naver, Kakao) и вход
// по email/паролю через Supabase
type AuthUseCase struct {
	naverRepo repository.SocialAuthRepository
	kakaoRepo repository.SocialAuthRepository
	authRepo  repository.AuthRepository
	stateRepo repository.StateRepository
	logger    *zap.Logger
	stateTTL  time.Duration
}

// NewAuthUseCase - создание нового AuthUseCase
func NewAuthUseCase(
	naverRepo repository.SocialAuthRepository,
	kakaoRepo repository.SocialAuthRepository,
	authRepo repository.AuthRepository,
	stateRepo repository.StateRepository,
	logger *zap.Logger,
	stateTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		naverRepo: naverRepo,
		kakaoRepo: kakaoRepo,
		authRepo:  authRepo,
		stateRepo: stateRepo,
		logger:    logger,
		stateTTL:  stateTTL,
	}
}

// NaverAuthURL генерирует URL авторизации Naver. State сохраняется в
// хранилище на время TTL и проверяется в callback.
func (uc *AuthUseCase) NaverAuthURL(ctx context.Context, req dto.AuthURLRequest) (*dto.AuthURLResponse, error) {
	return uc.authURL(ctx, uc.naverRepo, "naver", req)
}

// KakaoAuthURL генерирует URL авторизации Kakao
func (uc *AuthUseCase) KakaoAuthURL(ctx context.Context, req dto.AuthURLRequest) (*dto.AuthURLResponse, error) {
	return uc.authURL(ctx, uc.kakaoRepo, "kakao", req)
}

func (uc *AuthUseCase) authURL(ctx context.Context, repo repository.SocialAuthRepository, provider string, req dto.AuthURLRequest) (*dto.AuthURLResponse, error) {
	state := req.State
	if state == "" {
		state = uuid.NewString()
	}

	meta := domain.OAuthStateMeta{Provider: provider, RedirectURI: req.RedirectURI}
	if err := uc.stateRepo.Save(ctx, state, meta, uc.stateTTL); err != nil {
		uc.logger.Error("Failed to persist oauth state", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &dto.AuthURLResponse{
		AuthURL: repo.BuildAuthURL(req.RedirectURI, state),
		State:   state,
	}, nil
}

// NaverCallback обменивает authorization code на токен и профиль Naver.
// State одноразовый: повторный или неизвестный state отклоняется.
func (uc *AuthUseCase) NaverCallback(ctx context.Context, code, state string) (*domain.SocialLoginResult, error) {
	meta, err := uc.stateRepo.Consume(ctx, state)
	if err != nil {
		uc.logger.Error("Failed to consume oauth state", zap.Error(err))
		return nil, errors.ErrInternalServer
	}
	if meta == nil || meta.Provider != "naver" {
		return nil, errors.ErrInvalidOAuthState
	}

	token, err := uc.naverRepo.ExchangeCode(ctx, code, state)
	if err != nil {
		uc.logger.Error("Naver code exchange failed", zap.Error(err))
		return nil, errors.ErrLoginFailed.WithMessage("네이버 로그인에 실패했습니다.")
	}

	profile, err := uc.naverRepo.FetchProfile(ctx, token)
	if err != nil {
		uc.logger.Error("Naver profile fetch failed", zap.Error(err))
		return nil, errors.ErrLoginFailed.WithMessage("네이버 로그인에 실패했습니다.")
	}

	return &domain.SocialLoginResult{Success: true, Token: token, User: profile}, nil
}

// KakaoCallback обменивает authorization code на токен и профиль Kakao.
// Kakao требует redirect_uri совпадающий с шагом авторизации, state в
// обмене не участвует.
func (uc *AuthUseCase) KakaoCallback(ctx context.Context, code, redirectURI string) (*domain.SocialLoginResult, error) {
	token, err := uc.kakaoRepo.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		uc.logger.Error("Kakao code exchange failed", zap.Error(err))
		return nil, errors.ErrLoginFailed.WithMessage("카카오 로그인에 실패했습니다.")
	}

	profile, err := uc.kakaoRepo.FetchProfile(ctx, token)
	if err != nil {
		uc.logger.Error("Kakao profile fetch failed", zap.Error(err))
		return nil, errors.ErrLoginFailed.WithMessage("카카오 로그인에 실패했습니다.")
	}

	return &domain.SocialLoginResult{Success: true, Token: token, User: profile}, nil
}

// Login - вход по email/паролю через Supabase
func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*domain.AuthSession, error) {
	return uc.authRepo.SignIn(ctx, req.Email, req.Password)
}

// Register - регистрация нового пользователя через Supabase
func (uc *AuthUseCase) Register(ctx context.Context, req dto.LoginRequest) (*domain.AuthSession, error) {
	return uc.authRepo.SignUp(ctx, req.Email, req.Password)
}
