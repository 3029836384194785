package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models/dto"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
)

// StatusFor maps an error class onto an HTTP status and error code
func StatusFor(err error) (int, dto.ErrorCode) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrNothingChanged):
		return http.StatusConflict, dto.ErrorCodeNothingChanged
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists
	case errors.Is(err, apperrors.ErrStorage):
		return http.StatusInternalServerError, dto.ErrorCodeDatabaseError
	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer
	}
}

// HandleAPIError writes the error response of a failed read
func HandleAPIError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	message := apperrors.Message(err)
	if code == dto.ErrorCodeInternalServer {
		message = "Internal server error"
	}
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleOperation writes the outcome of a write. body carries the OperationResult
// shape in both cases; only the status differs.
func HandleOperation(c *gin.Context, successStatus int, body interface{}, err error) {
	if err != nil {
		status, _ := StatusFor(err)
		c.JSON(status, body)
		return
	}
	c.JSON(successStatus, body)
}
