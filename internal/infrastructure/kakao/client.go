package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matjib/matjib-backend/internal/config"
	"go.uber.org/zap"
)

const (
	authorizePath = "/oauth/authorize"
	tokenPath     = "/oauth/token"
	profilePath   = "/v2/user/me"
)

// Client - OAuth2-брокер Kakao. В отличие от Naver обмен кода идёт
// POST-формой и требует redirect_uri вместо state.
type Client struct {
	httpClient   *http.Client
	authBaseURL  string
	apiBaseURL   string
	clientID     string
	clientSecret string
	logger       *zap.Logger
}

func NewClient(cfg *config.KakaoConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		authBaseURL:  cfg.AuthBaseURL,
		apiBaseURL:   cfg.APIBaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		logger:       logger,
	}
}

// BuildAuthURL формирует URL страницы авторизации Kakao
func (c *Client) BuildAuthURL(redirectURI, state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("state", state)
	return c.authBaseURL + authorizePath + "?" + params.Encode()
}

// ExchangeCode обменивает authorization code на access token.
// redirect_uri должен совпадать с использованным на шаге авторизации.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", redirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authBaseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	body, status, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute token request: %w", err)
	}

	var tokenResp struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if status != http.StatusOK || tokenResp.AccessToken == "" {
		c.logger.Error("Kakao token exchange failed",
			zap.Int("status_code", status),
			zap.String("error", tokenResp.Error),
			zap.String("description", tokenResp.ErrorDescription))
		return "", fmt.Errorf("kakao token exchange failed: %s", tokenResp.ErrorDescription)
	}

	return tokenResp.AccessToken, nil
}

// FetchProfile запрашивает профиль пользователя Kakao по access token
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+profilePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	body, status, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute profile request: %w", err)
	}

	if status != http.StatusOK {
		c.logger.Error("Kakao profile request failed", zap.Int("status_code", status))
		return nil, fmt.Errorf("kakao profile request failed: status %d", status)
	}

	var profile map[string]any
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	return profile, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
