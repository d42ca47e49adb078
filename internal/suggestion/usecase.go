package suggestion

import (
	"context"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/suggestion/dto"
)

type UseCase interface {
	CreateSuggestion(ctx context.Context, input *dto.SuggestionRequest) (*model.Suggestion, error)
	ListSuggestions(ctx context.Context, filters *dto.SuggestionFilters) ([]model.Suggestion, error)
	Vote(ctx context.Context, id int64, delta int) (*model.Suggestion, error)
	DeleteSuggestion(ctx context.Context, id int64) error
}
