package dto

const (
	SortVotes  = "votes"
	SortRecent = "recent"
)

type SuggestionFilters struct {
	Sort        string
	SearchQuery string
}

type SuggestionRequest struct {
	Title       string  `json:"title" validate:"notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Category    *string `json:"category" validate:"omitempty,max=60"`
}

type VoteRequest struct {
	Delta int `json:"delta" validate:"required,oneof=1 -1"`
}
