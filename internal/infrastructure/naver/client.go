package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matjib/matjib-backend/internal/config"
	"github.com/matjib/matjib-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	blogSearchPath = "/v1/search/blog.json"
	profilePath    = "/v1/nid/me"
	tokenPath      = "/oauth2.0/token"
	authorizePath  = "/oauth2.0/authorize"
)

// Client работает с Naver OpenAPI: поиск по блогам и OAuth2-логин.
// Авторизация поисковых запросов - заголовки X-Naver-Client-Id/Secret.
type Client struct {
	httpClient   *http.Client
	authBaseURL  string
	apiBaseURL   string
	clientID     string
	clientSecret string
	logger       *zap.Logger
}

func NewClient(cfg *config.NaverConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		authBaseURL:  cfg.AuthBaseURL,
		apiBaseURL:   cfg.APIBaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		logger:       logger,
	}
}

// SearchBlogs проксирует поиск по блогам Naver, ответ отдаётся как есть
func (c *Client) SearchBlogs(ctx context.Context, query string, display, start int, sort string) (map[string]any, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(display))
	params.Set("start", strconv.Itoa(start))
	params.Set("sort", sort)

	reqURL := c.apiBaseURL + blogSearchPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	body, status, err := c.do(req)
	if err != nil {
		c.logger.Error("Naver blog search request failed", zap.Error(err))
		return nil, errors.ErrUpstreamUnavailable
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("Naver blog search returned non-JSON body", zap.Error(err))
		return nil, errors.ErrUpstreamUnavailable
	}

	if status != http.StatusOK {
		message := "네이버 검색 API 호출에 실패했습니다."
		if m, ok := result["errorMessage"].(string); ok && m != "" {
			message = m
		}
		c.logger.Error("Naver blog search returned error",
			zap.Int("status_code", status),
			zap.String("message", message))
		return nil, errors.New("NAVER_API_ERROR", message, status)
	}

	return result, nil
}

// BuildAuthURL формирует URL страницы авторизации Naver
func (c *Client) BuildAuthURL(redirectURI, state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("state", state)
	return c.authBaseURL + authorizePath + "?" + params.Encode()
}

// ExchangeCode обменивает authorization code на access token.
// Naver требует передать state вторым параметром обмена.
func (c *Client) ExchangeCode(ctx context.Context, code, state string) (string, error) {
	params := url.Values{}
	params.Set("grant_type", "authorization_code")
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("code", code)
	params.Set("state", state)

	reqURL := c.authBaseURL + tokenPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

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
		c.logger.Error("Naver token exchange failed",
			zap.Int("status_code", status),
			zap.String("error", tokenResp.Error),
			zap.String("description", tokenResp.ErrorDescription))
		return "", fmt.Errorf("naver token exchange failed: %s", tokenResp.ErrorDescription)
	}

	return tokenResp.AccessToken, nil
}

// FetchProfile запрашивает профиль пользователя Naver по access token.
// Возвращается вложенный объект response в формате провайдера.
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

	var profileResp struct {
		ResultCode string         `json:"resultcode"`
		Message    string         `json:"message"`
		Response   map[string]any `json:"response"`
	}
	if err := json.Unmarshal(body, &profileResp); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	if status != http.StatusOK || profileResp.Response == nil {
		c.logger.Error("Naver profile request failed",
			zap.Int("status_code", status),
			zap.String("message", profileResp.Message))
		return nil, fmt.Errorf("naver profile request failed: %s", profileResp.Message)
	}

	return profileResp.Response, nil
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
