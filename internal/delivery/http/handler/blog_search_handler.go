package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/matjib/matjib-backend/internal/pkg/errors"
	"github.com/matjib/matjib-backend/internal/pkg/utils"
	"github.com/matjib/matjib-backend/internal/pkg/validator"
	"github.com/matjib/matjib-backend/internal/usecase"
	"github.com/matjib/matjib-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// BlogSearchHandler - обработчик поиска блогов Naver
type BlogSearchHandler struct {
	blogUC *usecase.BlogSearchUseCase
	logger *zap.Logger
}

// NewBlogSearchHandler - создание нового BlogSearchHandler
func NewBlogSearchHandler(blogUC *usecase.BlogSearchUseCase, logger *zap.Logger) *BlogSearchHandler {
	return &BlogSearchHandler{
		blogUC: blogUC,
		logger: logger,
	}
}

// Search godoc
// @Summary Поиск постов в блогах Naver
// @Description Проксирует Naver Blog Search API с серверными учётными данными приложения
// @Tags Blog Search
// @Accept json
// @Produce json
// @Param query query string true "Текст запроса"
// @Param display query int false "Количество результатов" default(10)
// @Param start query int false "Смещение первого результата" default(1)
// @Param sort query string false "Порядок сортировки (sim или date)" default(sim)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/search [get]
func (h *BlogSearchHandler) Search(c *fiber.Ctx) error {
	var req dto.BlogSearchRequest
	req.Query = c.Query("query")
	req.Display = c.QueryInt("display", 10)
	req.Start = c.QueryInt("start", 1)
	req.Sort = c.Query("sort", "sim")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.blogUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}
