package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TariffRequest describes a new tariff. IsActive defaults to true.
type TariffRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Features    []string        `json:"features"`
	IsActive    *bool           `json:"is_active"`
}

// TariffPatchRequest carries a partial tariff update.
type TariffPatchRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Features    *[]string        `json:"features"`
	IsActive    *bool            `json:"is_active"`
}

// TariffResponse is the catalog view of a tariff.
type TariffResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Features    []string  `json:"features"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
