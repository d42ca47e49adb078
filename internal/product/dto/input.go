package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	CostPrice   *decimal.Decimal
	Image       *string
	Available   *bool // defaults to true
	Quantity    *int
	Unit        *string
	CategoryID  *int64
}

type UpdateProductInput struct {
	ID int64
	CreateProductInput
}
