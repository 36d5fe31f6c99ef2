package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/matjib/matjib-backend/internal/domain"
	"github.com/matjib/matjib-backend/internal/pkg/errors"
	"github.com/matjib/matjib-backend/internal/pkg/utils"
	"github.com/matjib/matjib-backend/internal/pkg/validator"
	"github.com/matjib/matjib-backend/internal/usecase"
	"github.com/matjib/matjib-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// SearchHandler - обработчик поиска заведений через портал открытых данных
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск заведений общепита
// @Description Ищет рестораны через 상가정보 API портала открытых данных. Текст запроса резолвится в код административного региона, эндпоинт выбирается автоматически (код региона, имя региона или категория), ответ приводится к стабильной канонической схеме.
// @Tags Public Search
// @Accept json
// @Produce json
// @Param query query string true "Текст запроса (название места или региона)"
// @Param display query int false "Размер страницы" default(10)
// @Param page query int false "Номер страницы" default(1)
// @Param endpoint query string false "Явный выбор эндпоинта (dong, area, upjong, radius)"
// @Param radius query number false "Радиус поиска в метрах (только для endpoint=radius)"
// @Param cx query number false "Долгота центра (только для endpoint=radius)"
// @Param cy query number false "Широта центра (только для endpoint=radius)"
// @Success 200 {object} domain.SearchResultPage
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/public/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.StoreSearchRequest
	req.Query = c.Query("query")
	req.Display = c.QueryInt("display", 10)
	req.Page = c.QueryInt("page", 1)
	req.Endpoint = c.Query("endpoint")
	req.Radius = c.QueryFloat("radius")
	req.Cx = c.QueryFloat("cx")
	req.Cy = c.QueryFloat("cy")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.searchUC.Search(c.Context(), domain.SearchQuery{
		Text:             req.Query,
		PageSize:         req.Display,
		PageNumber:       req.Page,
		EndpointOverride: domain.EndpointKind(req.Endpoint),
		RadiusMeters:     req.Radius,
		CenterLon:        req.Cx,
		CenterLat:        req.Cy,
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// LookupRegions godoc
// @Summary Сквозной поиск административного региона
// @Description Проксирует вызов baroApi и возвращает ответ в форме {resultCode, resultMsg, items, totalCount}
// @Tags Public Search
// @Accept json
// @Produce json
// @Param query query string true "Текст запроса"
// @Param numOfRows query int false "Количество строк" default(10)
// @Param pageNo query int false "Номер страницы" default(1)
// @Success 200 {object} dto.RegionLookupResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/public/baroApi [get]
func (h *SearchHandler) LookupRegions(c *fiber.Ctx) error {
	var req dto.RegionLookupRequest
	req.Query = c.Query("query")
	req.NumOfRows = c.QueryInt("numOfRows", 10)
	req.PageNo = c.QueryInt("pageNo", 1)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.searchUC.LookupRegions(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}
