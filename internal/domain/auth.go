package domain

// SocialLoginResult - итог обмена authorization code на токен у провайдера
// социального логина (Naver/Kakao) вместе с профилем пользователя.
// Профиль отдаётся как есть, в формате провайдера.
type SocialLoginResult struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    map[string]any `json:"user"`
}

// AuthSession - сессия Supabase после входа по email/паролю.
type AuthSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         any    `json:"user"`
}

// OAuthStateMeta - данные, сохраняемые на время жизни state-токена OAuth.
type OAuthStateMeta struct {
	Provider    string `json:"provider"`
	RedirectURI string `json:"redirect_uri"`
}
