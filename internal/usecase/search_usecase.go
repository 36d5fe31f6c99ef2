package usecase

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/matjib/matjib-backend/internal/domain"
	"github.com/matjib/matjib-backend/internal/domain/repository"
	"github.com/matjib/matjib-backend/internal/pkg/errors"
	"github.com/matjib/matjib-backend/internal/pkg/upstream"
	"github.com/matjib/matjib-backend/internal/pkg/utils"
	"github.com/matjib/matjib-backend/internal/usecase/dto"
)

const (
	requestURLLimit = 200
	rawXMLLimit     = 1000

	hintUnavailable = "공공 API 서버에 연결할 수 없습니다. 네트워크 상태와 베이스 URL을 확인하세요."
	hintMalformed   = "요청 파라미터 또는 엔드포인트가 잘못되었을 가능성이 있습니다. 요청 URL을 확인하세요."
	hintServiceKey  = "공공데이터포털에서 발급받은 서비스 키의 등록/승인 상태를 확인하세요."
)

// fallbackPattern - сигнатура ошибки "неверный параметр/формат запроса",
// при которой вне production вместо ошибки подставляются тестовые данные
var fallbackPattern = regexp.MustCompile(`(?i)INVALID[_ ]?REQUEST[_ ]?PARAMETER|WRONG[_ ]?PARAM|파라미터|요청\s*형식`)

// regionNameSuffixes - суффиксы корейских административных единиц.
// Проверяются по порядку, выигрывает первое совпадение.
var regionNameSuffixes = []string{"동", "구", "시"}

// resultCodePaths - где в JSON-ответе искать resultCode/resultMsg
var resultCodePaths = [][]string{
	{"header"},
	{"response", "header"},
	{},
}

// SearchUseCase - оркестратор поиска заведений: резолвинг региона, выбор
// эндпоинта, вызов upstream, классификация и нормализация ответа
type SearchUseCase struct {
	storeRepo  repository.StoreSearchRepository
	logger     *zap.Logger
	production bool
}

// NewSearchUseCase - создание нового SearchUseCase
func NewSearchUseCase(
	storeRepo repository.StoreSearchRepository,
	logger *zap.Logger,
	production bool,
) *SearchUseCase {
	return &SearchUseCase{
		storeRepo:  storeRepo,
		logger:     logger,
		production: production,
	}
}

// Search выполняет поиск заведений по тексту запроса.
// Сбой поиска региона поглощается (деградация до поиска по категории);
// сбой поиска заведений либо отдаётся структурной ошибкой, либо - вне
// production и только для ошибок параметров - подменяется страницей
// тестовых данных с ResultMsg == "TEST_DATA".
func (uc *SearchUseCase) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResultPage, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, errors.ErrInvalidRequest
	}
	if q.PageSize <= 0 {
		q.PageSize = 10
	}
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}

	region := uc.storeRepo.LookupRegion(ctx, q.Text)
	sel := uc.selectEndpoint(q, region)

	uc.logger.Debug("Store search endpoint selected",
		zap.String("query", q.Text),
		zap.String("endpoint", string(sel.Kind)),
		zap.String("region_code", region.Code),
		zap.String("region_name", region.Name))

	body, reqURL, err := uc.storeRepo.FetchStores(ctx, sel, q.PageSize, q.PageNumber)
	if err != nil {
		appErr := errors.ErrUpstreamUnavailable.WithDetails(map[string]interface{}{
			"hint":        hintUnavailable,
			"request_url": truncateRunes(reqURL, requestURLLimit),
		})
		return uc.failOrFallback(q, appErr, err.Error())
	}

	classified, err := upstream.Classify(body)
	if err != nil {
		uc.logger.Error("Failed to parse upstream body", zap.Error(err))
		appErr := errors.ErrUpstreamMalformed.WithDetails(map[string]interface{}{
			"hint":        hintMalformed,
			"request_url": truncateRunes(reqURL, requestURLLimit),
		})
		return uc.failOrFallback(q, appErr, err.Error())
	}

	switch classified.Kind {
	case domain.BodyHTMLError:
		uc.logger.Error("Store search returned HTML instead of JSON",
			zap.String("snippet", classified.Snippet))
		appErr := errors.ErrUpstreamMalformed.
			WithMessage("공공 API가 JSON 대신 HTML을 반환했습니다.").
			WithDetails(map[string]interface{}{
				"hint":        hintMalformed,
				"request_url": truncateRunes(reqURL, requestURLLimit),
				"snippet":     classified.Snippet,
			})
		return uc.failOrFallback(q, appErr, classified.Snippet)

	case domain.BodyXMLError:
		uc.logger.Error("Store search returned XML instead of JSON",
			zap.String("message", classified.Message),
			zap.String("reason_code", classified.ReasonCode))

		details := map[string]interface{}{
			"hint":        hintMalformed,
			"request_url": truncateRunes(reqURL, requestURLLimit),
			"raw_xml":     truncateRunes(body, rawXMLLimit),
		}

		var appErr *errors.AppError
		if isServiceKeyError(classified) {
			details["hint"] = hintServiceKey
			appErr = errors.ErrUpstreamAuth.
				WithMessage(classified.Message).
				WithDetails(details)
		} else {
			appErr = errors.ErrUpstreamMalformed.
				WithMessage(classified.Message).
				WithDetails(details)
		}
		return uc.failOrFallback(q, appErr, classified.Message+" "+classified.ReasonCode)
	}

	records, totalCount := upstream.Normalize(classified.JSON)
	resultCode, resultMsg := readResultMeta(classified.JSON)

	return &domain.SearchResultPage{
		Records:       records,
		TotalCount:    totalCount,
		PageableCount: totalCount,
		IsEnd:         q.PageNumber*q.PageSize >= totalCount,
		ResultCode:    resultCode,
		ResultMsg:     resultMsg,
	}, nil
}

// LookupRegions - сквозной вызов baroApi, ответ приводится к стабильной
// форме {resultCode, resultMsg, items, totalCount}
func (uc *SearchUseCase) LookupRegions(ctx context.Context, req dto.RegionLookupRequest) (*dto.RegionLookupResponse, error) {
	if req.NumOfRows <= 0 {
		req.NumOfRows = 10
	}
	if req.PageNo < 1 {
		req.PageNo = 1
	}

	body, reqURL, err := uc.storeRepo.FetchRegions(ctx, req.Query, req.NumOfRows, req.PageNo)
	if err != nil {
		return nil, errors.ErrUpstreamUnavailable.WithDetails(map[string]interface{}{
			"hint":        hintUnavailable,
			"request_url": truncateRunes(reqURL, requestURLLimit),
		})
	}

	classified, err := upstream.Classify(body)
	if err != nil || classified.Kind == domain.BodyHTMLError {
		return nil, errors.ErrUpstreamMalformed.WithDetails(map[string]interface{}{
			"hint":        hintMalformed,
			"request_url": truncateRunes(reqURL, requestURLLimit),
		})
	}
	if classified.Kind == domain.BodyXMLError {
		appErr := errors.ErrUpstreamMalformed
		if isServiceKeyError(classified) {
			appErr = errors.ErrUpstreamAuth
		}
		return nil, appErr.WithMessage(classified.Message).WithDetails(map[string]interface{}{
			"hint":        hintMalformed,
			"request_url": truncateRunes(reqURL, requestURLLimit),
			"raw_xml":     truncateRunes(body, rawXMLLimit),
		})
	}

	items, totalCount := upstream.ExtractItems(classified.JSON)
	if totalCount < 0 {
		totalCount = len(items)
	}
	resultCode, resultMsg := readResultMeta(classified.JSON)

	anyItems := make([]any, 0, len(items))
	for _, item := range items {
		anyItems = append(anyItems, item)
	}

	return &dto.RegionLookupResponse{
		ResultCode: resultCode,
		ResultMsg:  resultMsg,
		Items:      anyItems,
		TotalCount: totalCount,
	}, nil
}

// selectEndpoint выбирает upstream-эндпоинт в порядке приоритета:
// явный override вызывающего, код региона, корейский суффикс в тексте
// запроса, иначе поиск по категории.
func (uc *SearchUseCase) selectEndpoint(q domain.SearchQuery, region domain.RegionMatch) domain.EndpointSelection {
	switch q.EndpointOverride {
	case domain.EndpointByRadius:
		// Радиус требует обеих координат, иначе даунгрейд до
		// регионального выбора ниже
		if hasCoordinates(q) && utils.ValidateRadius(q.RadiusMeters) {
			return domain.EndpointSelection{
				Kind:         domain.EndpointByRadius,
				CenterLon:    q.CenterLon,
				CenterLat:    q.CenterLat,
				RadiusMeters: q.RadiusMeters,
			}
		}
	case domain.EndpointByRegionCode:
		if region.Code != "" {
			return domain.EndpointSelection{Kind: domain.EndpointByRegionCode, RegionCode: region.Code}
		}
	case domain.EndpointByRegionName:
		return domain.EndpointSelection{Kind: domain.EndpointByRegionName, RegionName: regionNameOrText(region, q.Text)}
	case domain.EndpointByCategory:
		return domain.EndpointSelection{Kind: domain.EndpointByCategory}
	}

	if region.Code != "" {
		return domain.EndpointSelection{Kind: domain.EndpointByRegionCode, RegionCode: region.Code}
	}
	if hasRegionSuffix(q.Text) {
		return domain.EndpointSelection{Kind: domain.EndpointByRegionName, RegionName: regionNameOrText(region, q.Text)}
	}
	return domain.EndpointSelection{Kind: domain.EndpointByCategory}
}

// failOrFallback решает судьбу ошибки upstream: вне production ошибка
// параметров запроса подменяется страницей тестовых данных, иначе ошибка
// отдаётся вызывающему как есть.
func (uc *SearchUseCase) failOrFallback(q domain.SearchQuery, appErr *errors.AppError, probe string) (*domain.SearchResultPage, error) {
	if !uc.production && fallbackPattern.MatchString(probe) {
		uc.logger.Warn("Substituting test data for upstream parameter error",
			zap.String("message", appErr.Message))
		return fallbackPage(q), nil
	}
	return nil, appErr
}

// fallbackPage - страница из двух захардкоженных записей. ResultMsg
// помечен как TEST_DATA, чтобы вызывающий мог отличить подмену от
// настоящих данных.
func fallbackPage(q domain.SearchQuery) *domain.SearchResultPage {
	records := []domain.StoreRecord{
		{
			ID:              "TEST-0000001",
			PlaceName:       "백채김치찌개",
			CategoryName:    "음식",
			CategoryMidName: "한식",
			AddressName:     "서울특별시 강남구 역삼동 123-45",
			RoadAddressName: "서울특별시 강남구 테헤란로 123",
			Phone:           "02-1234-5678",
			X:               "127.0365",
			Y:               "37.5002",
			ProvinceName:    "서울특별시",
			CityName:        "강남구",
			DongName:        "역삼동",
		},
		{
			ID:              "TEST-0000002",
			PlaceName:       "온기정",
			CategoryName:    "음식",
			CategoryMidName: "일식",
			AddressName:     "서울특별시 마포구 서교동 678-9",
			RoadAddressName: "서울특별시 마포구 양화로 45",
			Phone:           "02-9876-5432",
			X:               "126.9180",
			Y:               "37.5563",
			ProvinceName:    "서울특별시",
			CityName:        "마포구",
			DongName:        "서교동",
		},
	}

	total := len(records)
	return &domain.SearchResultPage{
		Records:       records,
		TotalCount:    total,
		PageableCount: total,
		IsEnd:         q.PageNumber*q.PageSize >= total,
		ResultCode:    "TEST",
		ResultMsg:     "TEST_DATA",
	}
}

func isServiceKeyError(c domain.ClassifiedBody) bool {
	return c.Message == upstream.MsgInvalidServiceKey ||
		upstream.IsServiceKeyReason(c.ReasonCode)
}

func hasCoordinates(q domain.SearchQuery) bool {
	if q.CenterLon == 0 || q.CenterLat == 0 {
		return false
	}
	return utils.ValidateCoordinates(q.CenterLat, q.CenterLon)
}

func hasRegionSuffix(text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, suffix := range regionNameSuffixes {
		if strings.HasSuffix(trimmed, suffix) {
			return true
		}
	}
	return false
}

func regionNameOrText(region domain.RegionMatch, text string) string {
	if region.Name != "" {
		return region.Name
	}
	return strings.TrimSpace(text)
}

// readResultMeta достаёт resultCode/resultMsg из одного из известных мест
// JSON-ответа; отсутствующие поля заменяются значениями нормального ответа
func readResultMeta(v any) (string, string) {
	for _, path := range resultCodePaths {
		level, ok := lookupPath(v, path)
		if !ok {
			continue
		}
		code := upstream.Field(level, "resultCode")
		msg := upstream.Field(level, "resultMsg")
		if code != "" || msg != "" {
			if code == "" {
				code = "00"
			}
			if msg == "" {
				msg = "NORMAL SERVICE"
			}
			return code, msg
		}
	}
	return "00", "NORMAL SERVICE"
}

func lookupPath(v any, path []string) (map[string]any, bool) {
	cur := v
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	m, ok := cur.(map[string]any)
	return m, ok
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
