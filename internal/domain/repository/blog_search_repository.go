package repository

import (
	"context"
)

// BlogSearchRepository определяет методы для работы с Naver OpenAPI поиска
// по блогам (проксируется как есть)
type BlogSearchRepository interface {
	// SearchBlogs выполняет поиск и возвращает ответ Naver без преобразования
	SearchBlogs(ctx context.Context, query string, display, start int, sort string) (map[string]any, error)
}
