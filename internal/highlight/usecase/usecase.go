package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/cache"
	"github.com/fekuna/omnipos-menu-service/internal/database"
	"github.com/fekuna/omnipos-menu-service/internal/event"
	"github.com/fekuna/omnipos-menu-service/internal/highlight"
	"github.com/fekuna/omnipos-menu-service/internal/highlight/dto"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"go.uber.org/zap"
)

type highlightUseCase struct {
	repo     highlight.Repository
	products highlight.ProductReader
	ranking  highlight.Ranking
	logger   logger.ZapLogger
}

func NewHighlightUseCase(repo highlight.Repository, products highlight.ProductReader, ranking highlight.Ranking, log logger.ZapLogger) highlight.UseCase {
	if ranking == nil {
		ranking = (*cache.RedisClient)(nil)
	}
	return &highlightUseCase{
		repo:     repo,
		products: products,
		ranking:  ranking,
		logger:   log,
	}
}

func (uc *highlightUseCase) CreateHighlight(ctx context.Context, input *dto.HighlightRequest) (*model.Highlight, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, apperror.Validation("reason is required")
	}
	if input.Order < 0 {
		return nil, apperror.Validation("order must not be negative")
	}

	h := &model.Highlight{
		ProductID:    input.ProductID,
		Reason:       reason,
		DisplayOrder: input.Order,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, h); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperror.NotFound("product", input.ProductID)
		}
		return nil, apperror.Persistence("create highlight", err)
	}
	return h, nil
}

func (uc *highlightUseCase) ListHighlights(ctx context.Context) ([]model.Highlight, error) {
	highlights, err := uc.repo.FindActive(ctx)
	if err != nil {
		return nil, apperror.Persistence("list highlights", err)
	}

	ids := make([]int64, 0, len(highlights))
	for _, h := range highlights {
		ids = append(ids, h.ProductID)
	}
	available, err := uc.availableProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.Highlight, 0, len(highlights))
	for _, h := range highlights {
		p, ok := available[h.ProductID]
		if !ok {
			continue
		}
		h.Product = p
		out = append(out, h)
	}
	return out, nil
}

func (uc *highlightUseCase) DeleteHighlight(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Persistence("delete highlight", err)
	}
	if !deleted {
		return apperror.NotFound("highlight", id)
	}
	return nil
}

// BestSellers reads the ranking kept in Redis. Products that were deleted or
// made unavailable since are skipped. Without Redis the ranking is empty.
func (uc *highlightUseCase) BestSellers(ctx context.Context, limit int) ([]model.BestSeller, error) {
	if limit <= 0 {
		limit = dto.DefaultBestSellerLimit
	}
	if limit > dto.MaxBestSellerLimit {
		limit = dto.MaxBestSellerLimit
	}

	scores, err := uc.ranking.TopScores(ctx, cache.KeyBestSellers, int64(limit))
	if err != nil {
		uc.logger.Warn("failed to read best sellers", zap.Error(err))
		return []model.BestSeller{}, nil
	}

	ranking := make([]model.BestSeller, 0, len(scores))
	ids := make([]int64, 0, len(scores))
	for _, z := range scores {
		member, _ := z.Member.(string)
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		ranking = append(ranking, model.BestSeller{ProductID: id, Sold: int64(z.Score)})
		ids = append(ids, id)
	}

	available, err := uc.availableProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := ranking[:0]
	for _, b := range ranking {
		if p, ok := available[b.ProductID]; ok {
			b.Product = p
			out = append(out, b)
		}
	}
	return out, nil
}

func (uc *highlightUseCase) RecordOrder(ctx context.Context, evt *event.OrderCreatedEvent) error {
	for _, item := range evt.Payload.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			continue
		}
		member := strconv.FormatInt(item.ProductID, 10)
		if err := uc.ranking.IncrementScore(ctx, cache.KeyBestSellers, member, float64(item.Quantity)); err != nil {
			return err
		}
	}
	return nil
}

func (uc *highlightUseCase) availableProducts(ctx context.Context, ids []int64) (map[int64]*model.Product, error) {
	products, err := uc.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Persistence("load products", err)
	}
	out := make(map[int64]*model.Product, len(products))
	for i := range products {
		if products[i].Available {
			out[products[i].ID] = &products[i]
		}
	}
	return out, nil
}
