package validation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestValidateNIM(t *testing.T) {
	tests := []struct {
		name    string
		nim     string
		valid   bool
		message string
	}{
		{"eight digits", "20240001", true, ""},
		{"twenty chars", "ABCDEFGHIJ0123456789", true, ""},
		{"lowercase accepted", "abcd1234", true, ""},
		{"empty", "", false, "NIM cannot be empty"},
		{"whitespace only", "   ", false, "NIM cannot be empty"},
		{"too short", "1234567", false, "Invalid NIM format (8-20 alphanumeric characters)"},
		{"too long", "ABCDEFGHIJ01234567890", false, "Invalid NIM format (8-20 alphanumeric characters)"},
		{"punctuation", "2024-0001", false, "Invalid NIM format (8-20 alphanumeric characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateNIM(tt.nim)
			assert.Equal(t, tt.valid, r.Valid)
			assert.Equal(t, tt.message, r.Message)
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.True(t, ValidateName("Jane Doe").Valid)
	assert.True(t, ValidateName("M. O'Neil").Valid)

	assert.Equal(t, "Name cannot be empty", ValidateName("  ").Message)
	assert.Equal(t, "Name too short", ValidateName("J").Message)
	assert.Equal(t, "Name too short", ValidateName(" J ").Message)
	assert.Equal(t, "Name too long (max 100 characters)", ValidateName(strings.Repeat("a", 101)).Message)
	assert.True(t, ValidateName(strings.Repeat("a", 100)).Valid)
	assert.Equal(t, "Name can only contain letters, spaces, dots, and apostrophes", ValidateName("Jane D0e").Message)
}

func TestValidateMajor(t *testing.T) {
	for _, m := range Majors {
		assert.True(t, ValidateMajor(m).Valid, m)
	}

	assert.Equal(t, "Major cannot be empty", ValidateMajor("").Message)
	assert.Equal(t,
		"Major must be one of: Informatics Engineering, Information Systems, Informatics Management, Computer Engineering",
		ValidateMajor("informatics engineering").Message)
}

func TestValidateAdmissionYearAt(t *testing.T) {
	assert.True(t, ValidateAdmissionYearAt(2000, 2026).Valid)
	assert.True(t, ValidateAdmissionYearAt(2026, 2026).Valid)
	assert.Equal(t, "Admission year must be between 2000 and 2026", ValidateAdmissionYearAt(1999, 2026).Message)
	assert.False(t, ValidateAdmissionYearAt(2027, 2026).Valid)
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("").Valid)
	assert.True(t, ValidateEmail("jane.doe+tag@uni.ac.id").Valid)
	assert.Equal(t, "Invalid email format", ValidateEmail("jane@uni").Message)
	assert.False(t, ValidateEmail("@uni.ac.id").Valid)
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("").Valid)
	assert.True(t, ValidatePhone("+62 812-3456-7890").Valid)
	assert.True(t, ValidatePhone("(021) 555 01234").Valid)
	assert.Equal(t, "Invalid phone number format (10-15 digits)", ValidatePhone("12345").Message)
	assert.False(t, ValidatePhone("0812345678x").Valid)
}

func TestValidateGrade(t *testing.T) {
	assert.True(t, ValidateGrade(0).Valid)
	assert.True(t, ValidateGrade(4).Valid)
	assert.Equal(t, "Grade must be between 0.00 and 4.00", ValidateGrade(4.01).Message)
	assert.False(t, ValidateGrade(-0.01).Valid)
	assert.False(t, ValidateGrade(math.NaN()).Valid)
}

func TestValidateAcademicYear(t *testing.T) {
	tests := []struct {
		year    string
		message string
	}{
		{"2024/2025", ""},
		{"", "Academic year cannot be empty"},
		{"2024:25", "Academic year must be in YYYY/YYYY format"},
		{"2024-2025", "Academic year must be in YYYY/YYYY format"},
		{"hello", "Academic year must be in YYYY/YYYY format"},
		{"2024/2026", "Academic year must span two consecutive years"},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			r := ValidateAcademicYear(tt.year)
			assert.Equal(t, tt.message == "", r.Valid)
			assert.Equal(t, tt.message, r.Message)
		})
	}
}

func TestValidateStudentAt_FirstFailureWins(t *testing.T) {
	valid := StudentInput{
		NIM:           "20240001",
		Name:          "Jane Doe",
		Major:         "Informatics Engineering",
		AdmissionYear: 2024,
	}

	r := ValidateStudentAt(valid, 2026)
	assert.True(t, r.Valid)
	assert.Equal(t, "Data is valid", r.Message)

	bad := valid
	bad.NIM = "x"
	bad.Name = "1"
	assert.Equal(t, "Invalid NIM format (8-20 alphanumeric characters)", ValidateStudentAt(bad, 2026).Message)

	bad = valid
	bad.Major = "Law"
	bad.Email = "nope"
	assert.Contains(t, ValidateStudentAt(bad, 2026).Message, "Major must be one of")

	bad = valid
	bad.Email = "nope"
	bad.Phone = "1"
	assert.Equal(t, "Invalid email format", ValidateStudentAt(bad, 2026).Message)
}

func TestResultErr(t *testing.T) {
	assert.NoError(t, ValidateNIM("20240001").Err())

	err := ValidateNIM("").Err()
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Equal(t, "NIM cannot be empty", err.Error())
}
