package dto

type UnitInput struct {
	Name         string  `json:"name" validate:"notblank,max=60"`
	Abbreviation *string `json:"abbreviation" validate:"omitempty,max=10"`
	Description  *string `json:"description" validate:"omitempty,max=255"`
}
