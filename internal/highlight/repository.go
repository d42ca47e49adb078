package highlight

import (
	"context"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/redis/go-redis/v9"
)

type Repository interface {
	Create(ctx context.Context, h *model.Highlight) error
	// FindActive returns active highlights by display order.
	FindActive(ctx context.Context) ([]model.Highlight, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ProductReader interface {
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
}

// Ranking is the sorted set backing the best-seller list. *cache.RedisClient
// satisfies it, including as a nil pointer when Redis is disabled.
type Ranking interface {
	IncrementScore(ctx context.Context, key, member string, by float64) error
	TopScores(ctx context.Context, key string, n int64) ([]redis.Z, error)
}
