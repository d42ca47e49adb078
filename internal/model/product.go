package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name        string              `db:"name" json:"name"`
	Description *string             `db:"description" json:"description"`
	Price       decimal.Decimal     `db:"price" json:"price"`
	CostPrice   decimal.NullDecimal `db:"cost_price" json:"costPrice"`
	Image       *string             `db:"image" json:"image"` // url or emoji
	Available   bool                `db:"available" json:"available"`
	Quantity    *int                `db:"quantity" json:"quantity"`
	Unit        *string             `db:"unit" json:"unit"`
	CategoryID  *int64              `db:"category_id" json:"categoryId"` // Nullable, uncategorized is valid
	Category    *Category           `db:"-" json:"category,omitempty"`
}
