package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/matjib/matjib-backend/internal/domain/repository"
	"github.com/matjib/matjib-backend/internal/usecase/dto"
)

// BlogSearchUseCase - проксирование поиска по блогам Naver как есть
type BlogSearchUseCase struct {
	blogRepo repository.BlogSearchRepository
	logger   *zap.Logger
}

// NewBlogSearchUseCase - создание нового BlogSearchUseCase
func NewBlogSearchUseCase(blogRepo repository.BlogSearchRepository, logger *zap.Logger) *BlogSearchUseCase {
	return &BlogSearchUseCase{
		blogRepo: blogRepo,
		logger:   logger,
	}
}

// Search выполняет поиск по блогам. Ответ Naver отдаётся без преобразования.
func (uc *BlogSearchUseCase) Search(ctx context.Context, req dto.BlogSearchRequest) (map[string]any, error) {
	if req.Display <= 0 {
		req.Display = 10
	}
	if req.Start < 1 {
		req.Start = 1
	}
	if req.Sort == "" {
		req.Sort = "sim"
	}

	result, err := uc.blogRepo.SearchBlogs(ctx, req.Query, req.Display, req.Start, req.Sort)
	if err != nil {
		uc.logger.Error("Blog search failed", zap.Error(err))
		return nil, err
	}
	return result, nil
}
