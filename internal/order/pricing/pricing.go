// Package pricing turns a cart into priced order lines using catalog prices only.
package pricing

import (
	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID int64
	Quantity  int
}

type Line struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

type Quote struct {
	Lines []Line
	Total decimal.Decimal
}

type Options struct {
	// RequireAvailable rejects products flagged unavailable. Off by default:
	// a product switched off after it entered a cart can still be ordered.
	RequireAvailable bool
}

// DistinctIDs returns the product ids of items in first-seen order.
func DistinctIDs(items []CartItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

// Index keys products by id.
func Index(products []model.Product) map[int64]model.Product {
	out := make(map[int64]model.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out
}

// Price resolves every cart entry against catalog and computes line subtotals
// and the grand total. Cart order is preserved and repeated ids stay separate
// lines. The first entry without a catalog product fails the whole cart.
func Price(items []CartItem, catalog map[int64]model.Product, opts Options) (*Quote, error) {
	if len(items) == 0 {
		return nil, apperror.Validation("cart is empty")
	}

	quote := &Quote{Lines: make([]Line, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, apperror.Validationf("quantity for product %d must be at least 1", it.ProductID)
		}
		p, ok := catalog[it.ProductID]
		if !ok {
			return nil, apperror.NotFound("product", it.ProductID)
		}
		if opts.RequireAvailable && !p.Available {
			return nil, apperror.Validationf("product %d is not available", it.ProductID)
		}

		unit := p.Price.Round(2)
		sub := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
		quote.Lines = append(quote.Lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			Subtotal:  sub,
		})
		quote.Total = quote.Total.Add(sub)
	}
	return quote, nil
}
