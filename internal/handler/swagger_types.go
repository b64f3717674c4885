package handler

// Response/error wrapper types referenced by the swagger annotations. They
// mirror APIResponse with concrete success/failure shapes so the generated
// docs show both variants.

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
