package dto

import "github.com/shopspring/decimal"

type ProductRequest struct {
	Name        string           `json:"name" validate:"notblank,max=200"`
	Description *string          `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	CostPrice   *decimal.Decimal `json:"costPrice"`
	Image       *string          `json:"image"`
	Available   *bool            `json:"available"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0"`
	Unit        *string          `json:"unit" validate:"omitempty,max=60"`
	CategoryID  *int64           `json:"categoryId" validate:"omitempty,gt=0"`
}

func (r *ProductRequest) ToInput() *CreateProductInput {
	return &CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CostPrice:   r.CostPrice,
		Image:       r.Image,
		Available:   r.Available,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		CategoryID:  r.CategoryID,
	}
}

type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}
