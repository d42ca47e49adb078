package dto

type CategoryFilters struct {
	RootsOnly bool
	ParentID  *int64
}
