package model

import "time"

// Highlight pairs a product with a merchandising reason for the recommended section.
type Highlight struct {
	ID           int64     `db:"id" json:"id"`
	ProductID    int64     `db:"product_id" json:"productId"`
	Reason       string    `db:"reason" json:"reason"`
	DisplayOrder int       `db:"display_order" json:"order"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	Product      *Product  `db:"-" json:"product,omitempty"`
}

type BestSeller struct {
	ProductID int64    `json:"productId"`
	Sold      int64    `json:"sold"`
	Product   *Product `json:"product,omitempty"`
}
