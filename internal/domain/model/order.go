package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes project request lifecycle.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a customer project request placed against a tariff.
type Order struct {
	ID                 int64
	UserID             int64
	TariffID           int64
	Tariff             *Tariff
	Status             OrderStatus
	ProjectName        string
	ProjectDescription string
	ReferenceLinks     []string
	Requirements       string
	Deadline           *time.Time
	Attachments        []string
	Comments           string
	TotalPrice         decimal.Decimal
	IsDeleted          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewOrder carries caller supplied fields for order creation.
type NewOrder struct {
	TariffID           int64      `json:"tariff" validate:"required,gt=0"`
	ProjectName        string     `json:"project_name" validate:"required,notblank,max=200"`
	ProjectDescription string     `json:"project_description" validate:"required,notblank"`
	Requirements       string     `json:"requirements" validate:"required,notblank"`
	ReferenceLinks     []string   `json:"reference_links" validate:"dive,http_url"`
	Attachments        []string   `json:"attachments" validate:"dive,http_url"`
	Comments           string     `json:"comments"`
	Deadline           *time.Time `json:"deadline"`
}

// OrderPatch carries a partial update. Nil fields are left untouched.
type OrderPatch struct {
	Status             *OrderStatus `json:"status" validate:"omitnil,order_status"`
	ProjectName        *string      `json:"project_name" validate:"omitnil,notblank,max=200"`
	ProjectDescription *string      `json:"project_description" validate:"omitnil,notblank"`
	ReferenceLinks     *[]string    `json:"reference_links" validate:"omitnil,dive,http_url"`
	Requirements       *string      `json:"requirements" validate:"omitnil,notblank"`
	Deadline           *time.Time   `json:"deadline"`
	Attachments        *[]string    `json:"attachments" validate:"omitnil,dive,http_url"`
	Comments           *string      `json:"comments"`
}

// Empty reports whether the patch carries no changes.
func (p OrderPatch) Empty() bool {
	return p.Status == nil && p.ProjectName == nil && p.ProjectDescription == nil &&
		p.ReferenceLinks == nil && p.Requirements == nil && p.Deadline == nil &&
		p.Attachments == nil && p.Comments == nil
}

// OrderListQuery describes list filters applied on top of the visibility predicate.
type OrderListQuery struct {
	Status       *OrderStatus
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
	Search       string
	Ordering     string
	Page         Page
}

// OrderScope is the visibility predicate the lifecycle manager hands to storage.
type OrderScope struct {
	// OwnerID restricts results to a single owner. Zero means every owner.
	OwnerID int64
}
