package dtos

// APIResponse is the envelope every endpoint responds with.
type APIResponse struct {
	Status       string              `json:"status"`
	Message      string              `json:"message"`
	ResponseTime string              `json:"response_time"`
	Data         any                 `json:"data,omitempty"`
	Errors       map[string][]string `json:"errors,omitempty"`
}

// ListResponse wraps a collection.
type ListResponse struct {
	Count   int              `json:"count"`
	Results []map[string]any `json:"results"`
}
