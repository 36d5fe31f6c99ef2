package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matjib/matjib-backend/internal/domain"
	apperrors "github.com/matjib/matjib-backend/internal/pkg/errors"
	"github.com/matjib/matjib-backend/internal/usecase/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSocialRepo struct {
	authURL string
	token   string
	profile map[string]any

	exchangeErr error
	profileErr  error

	lastCode            string
	lastStateOrRedirect string
}

func (s *stubSocialRepo) BuildAuthURL(redirectURI, state string) string {
	return s.authURL + "?redirect_uri=" + redirectURI + "&state=" + state
}

func (s *stubSocialRepo) ExchangeCode(_ context.Context, code, stateOrRedirect string) (string, error) {
	s.lastCode = code
	s.lastStateOrRedirect = stateOrRedirect
	return s.token, s.exchangeErr
}

func (s *stubSocialRepo) FetchProfile(_ context.Context, _ string) (map[string]any, error) {
	return s.profile, s.profileErr
}

type memoryStateRepo struct {
	states  map[string]domain.OAuthStateMeta
	saveErr error
}

func newMemoryStateRepo() *memoryStateRepo {
	return &memoryStateRepo{states: map[string]domain.OAuthStateMeta{}}
}

func (m *memoryStateRepo) Save(_ context.Context, state string, meta domain.OAuthStateMeta, _ time.Duration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.states[state] = meta
	return nil
}

func (m *memoryStateRepo) Consume(_ context.Context, state string) (*domain.OAuthStateMeta, error) {
	meta, ok := m.states[state]
	if !ok {
		return nil, nil
	}
	delete(m.states, state)
	return &meta, nil
}

type stubAuthRepo struct {
	session *domain.AuthSession
	err     error
}

func (s *stubAuthRepo) SignIn(_ context.Context, _, _ string) (*domain.AuthSession, error) {
	return s.session, s.err
}

func (s *stubAuthRepo) SignUp(_ context.Context, _, _ string) (*domain.AuthSession, error) {
	return s.session, s.err
}

func newAuthUC(naver, kakao *stubSocialRepo, auth *stubAuthRepo, states *memoryStateRepo) *AuthUseCase {
	logger, _ := zap.NewDevelopment()
	return NewAuthUseCase(naver, kakao, auth, states, logger, 10*time.Minute)
}

func TestAuthUseCase_AuthURL(t *testing.T) {
	t.Run("generates state when absent", func(t *testing.T) {
		naver := &stubSocialRepo{authURL: "https://nid.naver.com/oauth2.0/authorize"}
		states := newMemoryStateRepo()
		uc := newAuthUC(naver, &stubSocialRepo{}, &stubAuthRepo{}, states)

		resp, err := uc.NaverAuthURL(context.Background(), dto.AuthURLRequest{RedirectURI: "http://localhost:3000/cb"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.State)
		assert.Contains(t, resp.AuthURL, resp.State)

		meta, ok := states.states[resp.State]
		require.True(t, ok)
		assert.Equal(t, "naver", meta.Provider)
		assert.Equal(t, "http://localhost:3000/cb", meta.RedirectURI)
	})

	t.Run("keeps caller provided state", func(t *testing.T) {
		kakao := &stubSocialRepo{authURL: "https://kauth.kakao.com/oauth/authorize"}
		states := newMemoryStateRepo()
		uc := newAuthUC(&stubSocialRepo{}, kakao, &stubAuthRepo{}, states)

		resp, err := uc.KakaoAuthURL(context.Background(), dto.AuthURLRequest{
			RedirectURI: "http://localhost:3000/cb",
			State:       "my-state",
		})
		require.NoError(t, err)
		assert.Equal(t, "my-state", resp.State)
		assert.Equal(t, "kakao", states.states["my-state"].Provider)
	})

	t.Run("state store failure is internal error", func(t *testing.T) {
		states := newMemoryStateRepo()
		states.saveErr = errors.New("redis down")
		uc := newAuthUC(&stubSocialRepo{}, &stubSocialRepo{}, &stubAuthRepo{}, states)

		_, err := uc.NaverAuthURL(context.Background(), dto.AuthURLRequest{RedirectURI: "http://localhost:3000/cb"})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Code)
	})
}

func TestAuthUseCase_NaverCallback(t *testing.T) {
	t.Run("successful exchange", func(t *testing.T) {
		naver := &stubSocialRepo{
			token:   "access-token",
			profile: map[string]any{"id": "u1", "nickname": "맛집러"},
		}
		states := newMemoryStateRepo()
		states.states["s1"] = domain.OAuthStateMeta{Provider: "naver"}
		uc := newAuthUC(naver, &stubSocialRepo{}, &stubAuthRepo{}, states)

		result, err := uc.NaverCallback(context.Background(), "code-1", "s1")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "access-token", result.Token)
		assert.Equal(t, "맛집러", result.User["nickname"])
		assert.Equal(t, "code-1", naver.lastCode)
		assert.Equal(t, "s1", naver.lastStateOrRedirect)
	})

	t.Run("unknown state is rejected", func(t *testing.T) {
		uc := newAuthUC(&stubSocialRepo{}, &stubSocialRepo{}, &stubAuthRepo{}, newMemoryStateRepo())

		_, err := uc.NaverCallback(context.Background(), "code-1", "never-saved")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_OAUTH_STATE", appErr.Code)
	})

	t.Run("state of another provider is rejected", func(t *testing.T) {
		states := newMemoryStateRepo()
		states.states["s1"] = domain.OAuthStateMeta{Provider: "kakao"}
		uc := newAuthUC(&stubSocialRepo{}, &stubSocialRepo{}, &stubAuthRepo{}, states)

		_, err := uc.NaverCallback(context.Background(), "code-1", "s1")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_OAUTH_STATE", appErr.Code)
	})

	t.Run("state cannot be replayed", func(t *testing.T) {
		naver := &stubSocialRepo{token: "t", profile: map[string]any{}}
		states := newMemoryStateRepo()
		states.states["s1"] = domain.OAuthStateMeta{Provider: "naver"}
		uc := newAuthUC(naver, &stubSocialRepo{}, &stubAuthRepo{}, states)

		_, err := uc.NaverCallback(context.Background(), "code-1", "s1")
		require.NoError(t, err)

		_, err = uc.NaverCallback(context.Background(), "code-1", "s1")
		require.Error(t, err)
	})

	t.Run("exchange failure maps to login failed", func(t *testing.T) {
		naver := &stubSocialRepo{exchangeErr: errors.New("invalid_grant")}
		states := newMemoryStateRepo()
		states.states["s1"] = domain.OAuthStateMeta{Provider: "naver"}
		uc := newAuthUC(naver, &stubSocialRepo{}, &stubAuthRepo{}, states)

		_, err := uc.NaverCallback(context.Background(), "code-1", "s1")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "LOGIN_FAILED", appErr.Code)
		assert.Equal(t, "네이버 로그인에 실패했습니다.", appErr.Message)
	})
}

func TestAuthUseCase_KakaoCallback(t *testing.T) {
	t.Run("exchanges with redirect uri", func(t *testing.T) {
		kakao := &stubSocialRepo{
			token:   "kakao-token",
			profile: map[string]any{"id": float64(42)},
		}
		uc := newAuthUC(&stubSocialRepo{}, kakao, &stubAuthRepo{}, newMemoryStateRepo())

		result, err := uc.KakaoCallback(context.Background(), "code-2", "http://localhost:3000/cb")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "kakao-token", result.Token)
		assert.Equal(t, "http://localhost:3000/cb", kakao.lastStateOrRedirect)
	})

	t.Run("profile failure maps to login failed", func(t *testing.T) {
		kakao := &stubSocialRepo{token: "t", profileErr: errors.New("unauthorized")}
		uc := newAuthUC(&stubSocialRepo{}, kakao, &stubAuthRepo{}, newMemoryStateRepo())

		_, err := uc.KakaoCallback(context.Background(), "code-2", "http://localhost:3000/cb")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "LOGIN_FAILED", appErr.Code)
	})
}

func TestAuthUseCase_EmailAuth(t *testing.T) {
	t.Run("login returns session", func(t *testing.T) {
		auth := &stubAuthRepo{session: &domain.AuthSession{AccessToken: "jwt", ExpiresIn: 3600}}
		uc := newAuthUC(&stubSocialRepo{}, &stubSocialRepo{}, auth, newMemoryStateRepo())

		session, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "jwt", session.AccessToken)
	})

	t.Run("login failure propagates", func(t *testing.T) {
		auth := &stubAuthRepo{err: apperrors.ErrLoginFailed}
		uc := newAuthUC(&stubSocialRepo{}, &stubSocialRepo{}, auth, newMemoryStateRepo())

		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "wrong"})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "LOGIN_FAILED", appErr.Code)
	})
}
