package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/database"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/unit"
	"github.com/fekuna/omnipos-menu-service/internal/unit/dto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type unitUseCase struct {
	repo   unit.Repository
	logger logger.ZapLogger
}

func NewUnitUseCase(repo unit.Repository, log logger.ZapLogger) unit.UseCase {
	return &unitUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *unitUseCase) CreateUnit(ctx context.Context, input *dto.UnitInput) (*model.UnitMeasure, error) {
	now := time.Now().UTC()
	u := &model.UnitMeasure{BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now}}
	if err := apply(u, input); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, writeError("create unit", u.Name, err)
	}
	uc.logger.Info("unit measure created", zap.Int64("unit_id", u.ID), zap.String("name", u.Name))
	return u, nil
}

func (uc *unitUseCase) ListUnits(ctx context.Context) ([]model.UnitMeasure, error) {
	units, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Persistence("list units", err)
	}
	return units, nil
}

func (uc *unitUseCase) UpdateUnit(ctx context.Context, id int64, input *dto.UnitInput) (*model.UnitMeasure, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("find unit", err)
	}
	if u == nil {
		return nil, apperror.NotFound("unit", id)
	}
	if err := apply(u, input); err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now().UTC()

	updated, err := uc.repo.Update(ctx, u)
	if err != nil {
		return nil, writeError("update unit", u.Name, err)
	}
	if !updated {
		return nil, apperror.NotFound("unit", id)
	}
	return u, nil
}

func (uc *unitUseCase) DeleteUnit(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Persistence("delete unit", err)
	}
	if !deleted {
		return apperror.NotFound("unit", id)
	}
	return nil
}

func (uc *unitUseCase) StatsByUnit(ctx context.Context) ([]model.UnitStats, error) {
	products, err := uc.repo.FindStock(ctx)
	if err != nil {
		return nil, apperror.Persistence("load product stock", err)
	}
	return aggregate(products), nil
}

// aggregate sums stock per unit label. Products without a unit fall under
// model.NoUnitLabel; a missing quantity or cost counts as zero.
func aggregate(products []model.Product) []model.UnitStats {
	type acc struct {
		stats    model.UnitStats
		priceSum decimal.Decimal
		costSum  decimal.Decimal
	}
	groups := map[string]*acc{}

	for _, p := range products {
		label := model.NoUnitLabel
		if p.Unit != nil && strings.TrimSpace(*p.Unit) != "" {
			label = *p.Unit
		}
		g, ok := groups[label]
		if !ok {
			g = &acc{stats: model.UnitStats{Unit: label}}
			groups[label] = g
		}

		qty := 0
		if p.Quantity != nil {
			qty = *p.Quantity
		}
		g.stats.ProductCount++
		g.stats.TotalQuantity += qty
		g.stats.TotalValue = g.stats.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		g.priceSum = g.priceSum.Add(p.Price)
		if p.CostPrice.Valid {
			g.costSum = g.costSum.Add(p.CostPrice.Decimal)
		}
	}

	out := make([]model.UnitStats, 0, len(groups))
	for _, g := range groups {
		n := decimal.NewFromInt(int64(g.stats.ProductCount))
		g.stats.AveragePrice = g.priceSum.Div(n).Round(2)
		g.stats.AverageCostPrice = g.costSum.Div(n).Round(2)
		g.stats.TotalValue = g.stats.TotalValue.Round(2)
		out = append(out, g.stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Unit < out[j].Unit })
	return out
}

func apply(u *model.UnitMeasure, input *dto.UnitInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return apperror.Validation("unit name is required")
	}
	u.Name = name
	u.Abbreviation = trimmed(input.Abbreviation)
	u.Description = trimmed(input.Description)
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func writeError(op, name string, err error) error {
	if database.IsUniqueViolation(err) {
		return apperror.Conflict("a unit named \"" + name + "\" already exists")
	}
	return apperror.Persistence(op, err)
}
