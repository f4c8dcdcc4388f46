package models

// PaginatedResponse wraps one page of a tenant scoped listing.
type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
