package repository

import (
	"context"

	"github.com/matjib/matjib-backend/internal/domain"
)

// StoreSearchRepository определяет методы для работы с порталом открытых
// данных (상가정보 API)
type StoreSearchRepository interface {
	// LookupRegion ищет код административного региона по тексту запроса.
	// Никогда не возвращает ошибку: любой сбой деградирует до пустого
	// RegionMatch и лишь отключает выбор эндпоинта по коду региона.
	LookupRegion(ctx context.Context, query string) domain.RegionMatch

	// FetchStores вызывает выбранный эндпоинт поиска заведений и возвращает
	// сырое тело ответа вместе с URL запроса (для диагностики). Тело не
	// декодируется: несмотря на resultType=json upstream может вернуть
	// HTML или XML.
	FetchStores(ctx context.Context, sel domain.EndpointSelection, pageSize, pageNo int) (body string, requestURL string, err error)

	// FetchRegions - сквозной вызов эндпоинта baroApi для проксирования
	// ответа региона как есть.
	FetchRegions(ctx context.Context, query string, numOfRows, pageNo int) (body string, requestURL string, err error)
}
