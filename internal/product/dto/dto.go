package dto

type ProductFilters struct {
	Available   *bool  `json:"available,omitempty"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	SearchQuery string `json:"q,omitempty"` // name or description
	Limit       int    `json:"limit,omitempty"`
}
