package dto

import "time"

// ErrorResponse is the standardized JSON error body returned by every
// endpoint. It also implements error so middleware can propagate it.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid dias parameter"` // Human-readable summary
	ErrorDetails string    `json:"error,omitempty" example:"strconv.Atoi: parsing"`
	Timestamp    time.Time `json:"timestamp" example:"2024-01-02T10:00:00Z"`
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// inner error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}
