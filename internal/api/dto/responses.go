package dto

// ListResponse wraps a paginated listing.
type ListResponse struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	Limit   int `json:"limit"`
	Records any `json:"records"`
}

// CreatedResponse carries the identifiers of newly created documents,
// in the same order as the request payload.
type CreatedResponse struct {
	IDs []string `json:"ids"`
}
