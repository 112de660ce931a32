package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tariff is a price plan customers pick when placing an order.
type Tariff struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Features    []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTariff describes a new catalog entry.
type NewTariff struct {
	Name        string          `json:"name" validate:"required,notblank,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Features    []string        `json:"features" validate:"dive,notblank"`
	IsActive    bool            `json:"is_active"`
}

// TariffPatch holds staff changes to a tariff. Nil fields are left untouched.
type TariffPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Features    *[]string
	IsActive    *bool
}

// TariffListQuery describes catalog browsing parameters.
type TariffListQuery struct {
	IsActive *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   string
	Ordering string
	Page     Page
}
