package suggestion

import (
	"context"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/suggestion/dto"
)

type Repository interface {
	Create(ctx context.Context, s *model.Suggestion) error
	FindByID(ctx context.Context, id int64) (*model.Suggestion, error)
	FindAll(ctx context.Context, filters *dto.SuggestionFilters) ([]model.Suggestion, error)
	// Vote adds delta to the counter in a single statement, flooring at zero.
	// It returns nil when the suggestion does not exist.
	Vote(ctx context.Context, id int64, delta int) (*model.Suggestion, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
