package highlight

import (
	"context"

	"github.com/fekuna/omnipos-menu-service/internal/event"
	"github.com/fekuna/omnipos-menu-service/internal/highlight/dto"
	"github.com/fekuna/omnipos-menu-service/internal/model"
)

type UseCase interface {
	CreateHighlight(ctx context.Context, input *dto.HighlightRequest) (*model.Highlight, error)
	// ListHighlights returns active highlights whose product exists and is available.
	ListHighlights(ctx context.Context) ([]model.Highlight, error)
	DeleteHighlight(ctx context.Context, id int64) error

	BestSellers(ctx context.Context, limit int) ([]model.BestSeller, error)
	// RecordOrder adds the quantities of a placed order to the best-seller ranking.
	RecordOrder(ctx context.Context, evt *event.OrderCreatedEvent) error
}
