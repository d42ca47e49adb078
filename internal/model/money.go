package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money renders a currency amount as a JSON number with two decimals.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func nullMoney(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}
	m := Money(d.Decimal)
	return &m
}

func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		Total json.Number `json:"total"`
	}{order: order(o), Total: Money(o.Total)})
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	type item OrderItem
	return json.Marshal(struct {
		item
		UnitPrice json.Number `json:"unitPrice"`
		Subtotal  json.Number `json:"subtotal"`
	}{item: item(i), UnitPrice: Money(i.UnitPrice), Subtotal: Money(i.Subtotal)})
}

func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		Price     json.Number  `json:"price"`
		CostPrice *json.Number `json:"costPrice"`
	}{product: product(p), Price: Money(p.Price), CostPrice: nullMoney(p.CostPrice)})
}

func (s UnitStats) MarshalJSON() ([]byte, error) {
	type stats UnitStats
	return json.Marshal(struct {
		stats
		AveragePrice     json.Number `json:"averagePrice"`
		AverageCostPrice json.Number `json:"averageCostPrice"`
		TotalValue       json.Number `json:"totalValue"`
	}{
		stats:            stats(s),
		AveragePrice:     Money(s.AveragePrice),
		AverageCostPrice: Money(s.AverageCostPrice),
		TotalValue:       Money(s.TotalValue),
	})
}
