package dto

import (
	"time"

	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
)

// APIResponse wraps read payloads
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse wraps data with the current timestamp
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// OperationResult is the uniform outcome of a write: success with a message,
// or failure with an error message.
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	ID      int64  `json:"id,omitempty"`
}

// NewSuccessResult creates a successful result
func NewSuccessResult(message string, id int64) OperationResult {
	return OperationResult{
		Success: true,
		Message: message,
		ID:      id,
	}
}

// NewFailureResult creates a failed result carrying the user-facing message of err
func NewFailureResult(err error) OperationResult {
	return OperationResult{
		Success: false,
		Error:   apperrors.Message(err),
	}
}
