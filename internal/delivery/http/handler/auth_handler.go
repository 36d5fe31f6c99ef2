package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/matjib/matjib-backend/internal/pkg/errors"
	"github.com/matjib/matjib-backend/internal/pkg/utils"
	"github.com/matjib/matjib-backend/internal/pkg/validator"
	"github.com/matjib/matjib-backend/internal/usecase"
	"github.com/matjib/matjib-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// AuthHandler - обработчик OAuth-брокеринга и email-аутентификации
type AuthHandler struct {
	authUC *usecase.AuthUseCase
	logger *zap.Logger
}

// NewAuthHandler - создание нового AuthHandler
func NewAuthHandler(authUC *usecase.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// NaverAuthURL godoc
// @Summary URL авторизации Naver
// @Description Строит URL страницы согласия Naver OAuth и сохраняет одноразовый state
// @Tags Auth
// @Accept json
// @Produce json
// @Param redirect_uri query string true "URI возврата после согласия"
// @Param state query string false "Клиентский state (генерируется, если не задан)"
// @Success 200 {object} dto.AuthURLResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/naver/auth-url [get]
func (h *AuthHandler) NaverAuthURL(c *fiber.Ctx) error {
	return h.authURL(c, h.authUC.NaverAuthURL)
}

// KakaoAuthURL godoc
// @Summary URL авторизации Kakao
// @Description Строит URL страницы согласия Kakao OAuth и сохраняет одноразовый state
// @Tags Auth
// @Accept json
// @Produce json
// @Param redirect_uri query string true "URI возврата после согласия"
// @Param state query string false "Клиентский state (генерируется, если не задан)"
// @Success 200 {object} dto.AuthURLResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/kakao/auth-url [get]
func (h *AuthHandler) KakaoAuthURL(c *fiber.Ctx) error {
	return h.authURL(c, h.authUC.KakaoAuthURL)
}

func (h *AuthHandler) authURL(c *fiber.Ctx, build func(ctx context.Context, req dto.AuthURLRequest) (*dto.AuthURLResponse, error)) error {
	var req dto.AuthURLRequest
	req.RedirectURI = c.Query("redirect_uri")
	req.State = c.Query("state")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	resp, err := build(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(resp)
}

// NaverCallback godoc
// @Summary Обмен кода Naver на профиль
// @Description Проверяет одноразовый state, обменивает код на токен и возвращает профиль пользователя
// @Tags Auth
// @Accept json
// @Produce json
// @Param code query string true "Код авторизации"
// @Param state query string true "Ранее выданный state"
// @Success 200 {object} domain.SocialLoginResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/naver/callback [get]
func (h *AuthHandler) NaverCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("인증 코드가 없습니다."))
	}

	result, err := h.authUC.NaverCallback(c.Context(), code, c.Query("state"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// KakaoCallback godoc
// @Summary Обмен кода Kakao на профиль
// @Description Обменивает код авторизации Kakao на токен и возвращает профиль пользователя
// @Tags Auth
// @Accept json
// @Produce json
// @Param code query string true "Код авторизации"
// @Param redirect_uri query string true "URI, использованный при выдаче кода"
// @Success 200 {object} domain.SocialLoginResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/kakao/callback [get]
func (h *AuthHandler) KakaoCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("인증 코드가 없습니다."))
	}

	result, err := h.authUC.KakaoCallback(c.Context(), code, c.Query("redirect_uri"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// Login godoc
// @Summary Вход по email и паролю
// @Description Аутентифицирует пользователя через Supabase GoTrue
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учётные данные"
// @Success 200 {object} domain.AuthSession
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("요청 본문이 올바르지 않습니다."))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	session, err := h.authUC.Login(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(session)
}

// Register godoc
// @Summary Регистрация по email и паролю
// @Description Создаёт пользователя через Supabase GoTrue
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учётные данные"
// @Success 200 {object} domain.AuthSession
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("요청 본문이 올바르지 않습니다."))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	session, err := h.authUC.Register(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(session)
}
