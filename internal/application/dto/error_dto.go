package dto

// ErrorPayload is the body of every error response
type ErrorPayload struct {
	Status  int    `json:"status" example:"404"`
	Message string `json:"message" example:"Not Found"`
}
