package dto

import (
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/helpers"
)

// CreateStudentRequest is the body of POST /students.
// Field rules are enforced by the student service so its messages surface unchanged.
type CreateStudentRequest struct {
	NIM           string `json:"nim"`
	Name          string `json:"name"`
	Major         string `json:"major"`
	AdmissionYear int    `json:"admissionYear"`
	Email         string `json:"email" validate:"max=254"`
	Phone         string `json:"phone" validate:"max=32"`
}

// ToModel converts the request into a student record
func (r CreateStudentRequest) ToModel() *models.Student {
	return &models.Student{
		NIM:           r.NIM,
		Name:          r.Name,
		Major:         r.Major,
		AdmissionYear: r.AdmissionYear,
		Email:         helpers.StringPtr(r.Email),
		Phone:         helpers.StringPtr(r.Phone),
	}
}

// UpdateStudentRequest is the body of PUT /students/:id; omitted fields are kept
type UpdateStudentRequest struct {
	NIM           *string `json:"nim"`
	Name          *string `json:"name"`
	Major         *string `json:"major"`
	AdmissionYear *int    `json:"admissionYear"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
}

// ToModel converts the request into a partial update
func (r UpdateStudentRequest) ToModel() models.StudentUpdate {
	return models.StudentUpdate{
		NIM:           r.NIM,
		Name:          r.Name,
		Major:         r.Major,
		AdmissionYear: r.AdmissionYear,
		Email:         r.Email,
		Phone:         r.Phone,
	}
}

// StudentSearchQuery binds GET /students query parameters
type StudentSearchQuery struct {
	Q     string `form:"q"`
	Major string `form:"major"`
	Year  int    `form:"year" validate:"min=0"`
}

// ToFilter converts query parameters into a student filter
func (q StudentSearchQuery) ToFilter() models.StudentFilter {
	return models.StudentFilter{
		SearchTerm: q.Q,
		Major:      q.Major,
		Year:       q.Year,
	}
}
