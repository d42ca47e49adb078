package dto

const (
	DefaultBestSellerLimit = 10
	MaxBestSellerLimit     = 50
)

type HighlightRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"notblank,max=120"`
	Order     int    `json:"order" validate:"gte=0"`
}
