package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models/dto"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("Name too short"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"grade range", apperrors.NewCustomError(apperrors.ErrGradeOutOfRange, "x"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"not found", apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, "Student not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"conflict", apperrors.NewConflictError(apperrors.ErrStudentIDAlreadyExists, "taken"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"nothing changed", apperrors.NewCustomError(apperrors.ErrNothingChanged, "Failed"), http.StatusConflict, dto.ErrorCodeNothingChanged},
		{"storage", apperrors.NewStorageError(errors.New("boom")), http.StatusInternalServerError, dto.ErrorCodeDatabaseError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := StatusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, apperrors.NewNotFoundError(apperrors.ErrCourseNotFound, "Course not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
	assert.Equal(t, "Course not found", resp.Error.Message)
}

func TestHandleOperation(t *testing.T) {
	err := apperrors.NewConflictError(apperrors.ErrStudentIDAlreadyExists, "NIM 20240001 is already registered")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleOperation(c, http.StatusCreated, dto.NewFailureResult(err), err)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"NIM 20240001 is already registered"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	HandleOperation(c, http.StatusCreated, dto.NewSuccessResult("Student successfully added", 7), nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Student successfully added","id":7}`, w.Body.String())
}

func TestBindJSON(t *testing.T) {
	router := gin.New()
	router.POST("/grades", func(c *gin.Context) {
		var req dto.AddGradeRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		body   string
		status int
		detail string
	}{
		{"valid", `{"studentId":1,"courseId":2,"semester":1,"academicYear":"2024/2025","gradeValue":0}`, http.StatusNoContent, ""},
		{"malformed", `{"studentId":`, http.StatusBadRequest, ""},
		{"missing grade", `{"studentId":1,"courseId":2,"semester":1,"academicYear":"2024/2025"}`, http.StatusBadRequest, "GradeValue is required"},
		{"zero semester", `{"studentId":1,"courseId":2,"semester":0,"academicYear":"2024","gradeValue":3}`, http.StatusBadRequest, "Semester is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/grades", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.detail != "" {
				assert.Contains(t, w.Body.String(), tt.detail)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(zerolog.Nop()))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
