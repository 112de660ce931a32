package dto

import "time"

// OrderRequest describes a new order.
type OrderRequest struct {
	Tariff             int64    `json:"tariff"`
	ProjectName        string   `json:"project_name"`
	ProjectDescription string   `json:"project_description"`
	ReferenceLinks     []string `json:"reference_links"`
	Requirements       string   `json:"requirements"`
	Deadline           *Date    `json:"deadline"`
	Attachments        []string `json:"attachments"`
	Comments           string   `json:"comments"`
}

// OrderPatchRequest carries a partial order update.
type OrderPatchRequest struct {
	Status             *string   `json:"status"`
	ProjectName        *string   `json:"project_name"`
	ProjectDescription *string   `json:"project_description"`
	ReferenceLinks     *[]string `json:"reference_links"`
	Requirements       *string   `json:"requirements"`
	Deadline           *Date     `json:"deadline"`
	Attachments        *[]string `json:"attachments"`
	Comments           *string   `json:"comments"`
}

// OrderResponse is the order resource.
type OrderResponse struct {
	ID                 int64           `json:"id"`
	User               int64           `json:"user"`
	Tariff             int64           `json:"tariff"`
	TariffDetails      *TariffResponse `json:"tariff_details"`
	Status             string          `json:"status"`
	ProjectName        string          `json:"project_name"`
	ProjectDescription string          `json:"project_description"`
	ReferenceLinks     []string        `json:"reference_links"`
	Requirements       string          `json:"requirements"`
	Deadline           *Date           `json:"deadline"`
	Attachments        []string        `json:"attachments"`
	Comments           string          `json:"comments"`
	TotalPrice         string          `json:"total_price"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// AdminOrderResponse adds the soft delete flag for staff views.
type AdminOrderResponse struct {
	OrderResponse
	IsDeleted bool `json:"is_deleted"`
}
