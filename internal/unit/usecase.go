package unit

import (
	"context"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/unit/dto"
)

type UseCase interface {
	CreateUnit(ctx context.Context, input *dto.UnitInput) (*model.UnitMeasure, error)
	ListUnits(ctx context.Context) ([]model.UnitMeasure, error)
	UpdateUnit(ctx context.Context, id int64, input *dto.UnitInput) (*model.UnitMeasure, error)
	DeleteUnit(ctx context.Context, id int64) error

	// StatsByUnit groups products by their unit label.
	StatsByUnit(ctx context.Context) ([]model.UnitStats, error)
}
