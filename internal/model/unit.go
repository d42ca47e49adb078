package model

import "github.com/shopspring/decimal"

const NoUnitLabel = "Sem unidade"

type UnitMeasure struct {
	BaseModel
	Name         string  `db:"name" json:"name"`
	Abbreviation *string `db:"abbreviation" json:"abbreviation"`
	Description  *string `db:"description" json:"description"`
}

type UnitStats struct {
	Unit             string          `json:"unit"`
	ProductCount     int             `json:"productCount"`
	TotalQuantity    int             `json:"totalQuantity"`
	AveragePrice     decimal.Decimal `json:"averagePrice"`
	AverageCostPrice decimal.Decimal `json:"averageCostPrice"`
	TotalValue       decimal.Decimal `json:"totalValue"`
}
