package dto

// ErrorResponse is the uniform error payload. Code is one of the stable
// reason codes from the apperr package.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
