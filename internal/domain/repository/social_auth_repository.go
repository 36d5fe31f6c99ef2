package repository

import (
	"context"
)

// SocialAuthRepository определяет методы OAuth2-брокера провайдера
// социального логина (Naver, Kakao)
type SocialAuthRepository interface {
	// BuildAuthURL формирует URL страницы авторизации провайдера
	BuildAuthURL(redirectURI, state string) string

	// ExchangeCode обменивает authorization code на access token
	ExchangeCode(ctx context.Context, code, stateOrRedirect string) (string, error)

	// FetchProfile запрашивает профиль пользователя по access token.
	// Профиль возвращается в формате провайдера без преобразования.
	FetchProfile(ctx context.Context, accessToken string) (map[string]any, error)
}
