package dto

// ErrorResponse is the single-message error body: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries field-level messages: {"errors": [...]}.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}
