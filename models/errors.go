// ABOUTME: API error response model
// ABOUTME: JSON-serializable structure shared by handlers and middleware

package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
