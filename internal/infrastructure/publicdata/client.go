package publicdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matjib/matjib-backend/internal/config"
	"github.com/matjib/matjib-backend/internal/domain"
	"github.com/matjib/matjib-backend/internal/domain/repository"
	"github.com/matjib/matjib-backend/internal/pkg/upstream"
	"go.uber.org/zap"
)

const (
	regionLookupPath = "/baroApi"
	storesByDong     = "/storeListInDong"
	storesByArea     = "/storeListInArea"
	storesByUpjong   = "/storeListInUpjong"
	storesByRadius   = "/storeListInRadius"
)

type client struct {
	searchClient *http.Client
	regionClient *http.Client
	baseURL      string
	serviceKey   string
	logger       *zap.Logger
}

// NewClient создает новый клиент портала открытых данных (상가정보 API)
func NewClient(cfg *config.PublicDataConfig, logger *zap.Logger) repository.StoreSearchRepository {
	return &client{
		searchClient: &http.Client{Timeout: cfg.SearchTimeout},
		regionClient: &http.Client{Timeout: cfg.RegionTimeout},
		baseURL:      cfg.BaseURL,
		serviceKey:   cfg.ServiceKey,
		logger:       logger,
	}
}

// LookupRegion ищет административный регион по тексту запроса. Любой сбой
// (сеть, не-2xx, не-JSON, пустой список) деградирует до пустого RegionMatch:
// этот вызов никогда не роняет поиск, он лишь отключает выбор эндпоинта
// по коду региона.
func (c *client) LookupRegion(ctx context.Context, query string) domain.RegionMatch {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("numOfRows", "10")
	params.Set("pageNo", "1")
	params.Set("resultType", "json")
	params.Set("key", query)

	reqURL := c.baseURL + regionLookupPath + "?" + params.Encode()

	body, status, err := c.fetch(ctx, c.regionClient, reqURL)
	if err != nil {
		c.logger.Warn("Region lookup failed, falling back to category search", zap.Error(err))
		return domain.RegionMatch{}
	}
	if status != http.StatusOK {
		c.logger.Warn("Region lookup returned non-OK status", zap.Int("status_code", status))
		return domain.RegionMatch{}
	}

	var parsed any
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		c.logger.Warn("Region lookup returned non-JSON body", zap.Error(err))
		return domain.RegionMatch{}
	}

	items, _ := upstream.ExtractItems(parsed)
	if len(items) == 0 {
		c.logger.Debug("Region lookup found no match", zap.String("query", query))
		return domain.RegionMatch{}
	}

	first := items[0]
	match := domain.RegionMatch{
		Code: upstream.Field(first, "adongCd", "행정동코드", "ctprvnCd", "시도코드"),
		Name: upstream.Field(first, "adongNm", "행정동명", "ctprvnNm", "시도명"),
	}

	c.logger.Debug("Region lookup matched",
		zap.String("query", query),
		zap.String("region_code", match.Code),
		zap.String("region_name", match.Name))

	return match
}

// FetchStores вызывает эндпоинт поиска заведений, соответствующий выбору.
// 5xx - единственный статус быстрого отказа: портал часто отвечает 200/4xx
// с телом ошибки, поэтому прочие статусы возвращаются на классификацию.
func (c *client) FetchStores(ctx context.Context, sel domain.EndpointSelection, pageSize, pageNo int) (string, string, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("numOfRows", strconv.Itoa(pageSize))
	params.Set("pageNo", strconv.Itoa(pageNo))
	params.Set("resultType", "json")

	var path string
	switch sel.Kind {
	case domain.EndpointByRegionCode:
		path = storesByDong
		params.Set("divId", "adongCd")
		params.Set("key", sel.RegionCode)
		params.Set("indsLclsCd", domain.IndustryClassRestaurants)
	case domain.EndpointByRegionName:
		path = storesByArea
		params.Set("key", sel.RegionName)
		params.Set("indsLclsCd", domain.IndustryClassRestaurants)
	case domain.EndpointByRadius:
		path = storesByRadius
		params.Set("cx", strconv.FormatFloat(sel.CenterLon, 'f', -1, 64))
		params.Set("cy", strconv.FormatFloat(sel.CenterLat, 'f', -1, 64))
		params.Set("radius", strconv.FormatFloat(sel.RadiusMeters, 'f', -1, 64))
		params.Set("indsLclsCd", domain.IndustryClassRestaurants)
	default:
		path = storesByUpjong
		params.Set("divId", "indsLclsCd")
		params.Set("key", domain.IndustryClassRestaurants)
	}

	reqURL := c.baseURL + path + "?" + params.Encode()

	c.logger.Debug("Calling store search API",
		zap.String("endpoint", string(sel.Kind)),
		zap.String("url", reqURL))

	body, status, err := c.fetch(ctx, c.searchClient, reqURL)
	if err != nil {
		c.logger.Error("Store search request failed", zap.Error(err))
		return "", reqURL, fmt.Errorf("failed to execute request: %w", err)
	}
	if status >= http.StatusInternalServerError {
		c.logger.Error("Store search API returned server error",
			zap.Int("status_code", status))
		return "", reqURL, fmt.Errorf("store search API error: status %d", status)
	}

	return body, reqURL, nil
}

// FetchRegions - сквозной вызов baroApi для проксирования ответа как есть
func (c *client) FetchRegions(ctx context.Context, query string, numOfRows, pageNo int) (string, string, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("numOfRows", strconv.Itoa(numOfRows))
	params.Set("pageNo", strconv.Itoa(pageNo))
	params.Set("resultType", "json")
	params.Set("key", query)

	reqURL := c.baseURL + regionLookupPath + "?" + params.Encode()

	body, status, err := c.fetch(ctx, c.regionClient, reqURL)
	if err != nil {
		c.logger.Error("Region passthrough request failed", zap.Error(err))
		return "", reqURL, fmt.Errorf("failed to execute request: %w", err)
	}
	if status >= http.StatusInternalServerError {
		return "", reqURL, fmt.Errorf("region lookup API error: status %d", status)
	}

	return body, reqURL, nil
}

func (c *client) fetch(ctx context.Context, httpClient *http.Client, reqURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), resp.StatusCode, nil
}
