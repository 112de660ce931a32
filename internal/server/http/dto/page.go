package dto

// PageResponse is the paged list envelope.
type PageResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status string `json:"status"`
}
