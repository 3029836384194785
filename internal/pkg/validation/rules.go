package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// NIM: 8-20 ASCII letters or digits, either case
	NIMPattern = `^[A-Za-z0-9]{8,20}$`

	NamePattern  = `^[a-zA-Z\s.']+$`
	EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	PhonePattern = `^\+?[0-9]{10,15}$`

	// Academic year: "2024/2025", consecutive years
	AcademicYearPattern = `^([0-9]{4})/([0-9]{4})$`

	NameMinLength = 2
	NameMaxLength = 100

	MinAdmissionYear = 2000

	MinGrade = 0.0
	MaxGrade = 4.0
)

// Majors is the closed set of programmes a student can enrol in
var Majors = []string{
	"Informatics Engineering",
	"Information Systems",
	"Informatics Management",
	"Computer Engineering",
}

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	NIM        *regexp.Regexp
	Name       *regexp.Regexp
	Email      *regexp.Regexp
	Phone      *regexp.Regexp
	PhoneNoise *regexp.Regexp
	AcadYear   *regexp.Regexp
}{
	NIM:        regexp.MustCompile(NIMPattern),
	Name:       regexp.MustCompile(NamePattern),
	Email:      regexp.MustCompile(EmailPattern),
	Phone:      regexp.MustCompile(PhonePattern),
	PhoneNoise: regexp.MustCompile(`[\s\-()]`),
	AcadYear:   regexp.MustCompile(AcademicYearPattern),
}

// Result is the outcome of a single check
type Result struct {
	Valid   bool
	Message string
}

func ok() Result { return Result{Valid: true} }

func fail(format string, args ...interface{}) Result {
	return Result{Valid: false, Message: fmt.Sprintf(format, args...)}
}

// Err converts a failed result into a validation error, nil otherwise
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return apperrors.NewValidationError(r.Message)
}

// ValidateNIM checks the external student identifier
func ValidateNIM(nim string) Result {
	if strings.TrimSpace(nim) == "" {
		return fail("NIM cannot be empty")
	}
	if !CompiledPatterns.NIM.MatchString(nim) {
		return fail("Invalid NIM format (8-20 alphanumeric characters)")
	}
	return ok()
}

// ValidateName checks a student's full name
func ValidateName(name string) Result {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fail("Name cannot be empty")
	}
	length := utf8.RuneCountInString(trimmed)
	if length < NameMinLength {
		return fail("Name too short")
	}
	if length > NameMaxLength {
		return fail("Name too long (max %d characters)", NameMaxLength)
	}
	if !CompiledPatterns.Name.MatchString(name) {
		return fail("Name can only contain letters, spaces, dots, and apostrophes")
	}
	return ok()
}

// IsValidMajor reports whether major is one of Majors
func IsValidMajor(major string) bool {
	for _, m := range Majors {
		if m == major {
			return true
		}
	}
	return false
}

// ValidateMajor checks membership in the closed major set
func ValidateMajor(major string) Result {
	if strings.TrimSpace(major) == "" {
		return fail("Major cannot be empty")
	}
	if !IsValidMajor(major) {
		return fail("Major must be one of: %s", strings.Join(Majors, ", "))
	}
	return ok()
}

// ValidateAdmissionYear checks year against the current calendar year
func ValidateAdmissionYear(year int) Result {
	return ValidateAdmissionYearAt(year, time.Now().Year())
}

// ValidateAdmissionYearAt checks MinAdmissionYear <= year <= currentYear
func ValidateAdmissionYearAt(year, currentYear int) Result {
	if year < MinAdmissionYear || year > currentYear {
		return fail("Admission year must be between %d and %d", MinAdmissionYear, currentYear)
	}
	return ok()
}

// ValidateEmail passes blank input
func ValidateEmail(email string) Result {
	if strings.TrimSpace(email) == "" {
		return ok()
	}
	if !CompiledPatterns.Email.MatchString(email) {
		return fail("Invalid email format")
	}
	return ok()
}

// ValidatePhone passes blank input; spaces, hyphens and parentheses are ignored
func ValidatePhone(phone string) Result {
	if strings.TrimSpace(phone) == "" {
		return ok()
	}
	cleaned := CompiledPatterns.PhoneNoise.ReplaceAllString(phone, "")
	if !CompiledPatterns.Phone.MatchString(cleaned) {
		return fail("Invalid phone number format (10-15 digits)")
	}
	return ok()
}

// ValidateGrade checks MinGrade <= value <= MaxGrade
func ValidateGrade(value float64) Result {
	if math.IsNaN(value) || value < MinGrade || value > MaxGrade {
		return fail("Grade must be between %.2f and %.2f", MinGrade, MaxGrade)
	}
	return ok()
}

// ValidateAcademicYear accepts "YYYY/YYYY" where the second year follows the first
func ValidateAcademicYear(year string) Result {
	if strings.TrimSpace(year) == "" {
		return fail("Academic year cannot be empty")
	}
	m := CompiledPatterns.AcadYear.FindStringSubmatch(year)
	if m == nil {
		return fail("Academic year must be in YYYY/YYYY format")
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end != start+1 {
		return fail("Academic year must span two consecutive years")
	}
	return ok()
}

// StudentInput is the flat view of a student record the composite check runs over
type StudentInput struct {
	NIM           string
	Name          string
	Major         string
	AdmissionYear int
	Email         string
	Phone         string
}

// ValidateStudent runs nim, name, major, year, email, phone in that order
// and returns the first failure.
func ValidateStudent(in StudentInput) Result {
	return ValidateStudentAt(in, time.Now().Year())
}

// ValidateStudentAt is ValidateStudent with an explicit reference year
func ValidateStudentAt(in StudentInput, currentYear int) Result {
	checks := []func() Result{
		func() Result { return ValidateNIM(in.NIM) },
		func() Result { return ValidateName(in.Name) },
		func() Result { return ValidateMajor(in.Major) },
		func() Result { return ValidateAdmissionYearAt(in.AdmissionYear, currentYear) },
		func() Result { return ValidateEmail(in.Email) },
		func() Result { return ValidatePhone(in.Phone) },
	}

	for _, check := range checks {
		if r := check(); !r.Valid {
			return r
		}
	}

	return Result{Valid: true, Message: "Data is valid"}
}
