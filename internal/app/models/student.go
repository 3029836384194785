package models

import "time"

// Student represents a registered student.
type Student struct {
	ID            int64     `json:"id" db:"id"`
	NIM           string    `json:"nim" db:"nim"`
	Name          string    `json:"name" db:"name"`
	Major         string    `json:"major" db:"major"`
	Email         *string   `json:"email,omitempty" db:"email"` // Nullable
	Phone         *string   `json:"phone,omitempty" db:"phone"` // Nullable
	AdmissionYear int       `json:"admissionYear" db:"admission_year"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// StudentWithStats is a student row joined with its grade aggregates.
type StudentWithStats struct {
	Student
	CourseCount int     `json:"courseCount" db:"course_count"`
	AvgGrade    float64 `json:"avgGrade" db:"avg_grade"`
}

// StudentFilter narrows a student search. Zero values mean no filter on that dimension.
type StudentFilter struct {
	SearchTerm string
	Major      string
	Year       int
}

// StudentUpdate carries the caller-supplied fields of a partial update.
// A nil field keeps the stored value; an empty Email or Phone clears it.
type StudentUpdate struct {
	NIM           *string `json:"nim,omitempty"`
	Name          *string `json:"name,omitempty"`
	Major         *string `json:"major,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	AdmissionYear *int    `json:"admissionYear,omitempty"`
}

// IsEmpty reports whether no field was supplied
func (u StudentUpdate) IsEmpty() bool {
	return u.NIM == nil && u.Name == nil && u.Major == nil &&
		u.Email == nil && u.Phone == nil && u.AdmissionYear == nil
}

// StudentDetail joins a student with its grades and GPA aggregate.
type StudentDetail struct {
	StudentWithStats
	Grades           []GradeWithCourse `json:"grades"`
	GPA              float64           `json:"gpa"`
	TotalCredits     int               `json:"totalCredits"`
	CompletedCourses int               `json:"completedCourses"`
}

// AcademicSummary aggregates across all students
type AcademicSummary struct {
	TotalStudents      int               `json:"totalStudents"`
	StudentsWithGrades int               `json:"studentsWithGrades"`
	AverageGPA         float64           `json:"averageGpa"`
	MajorStatistics    []MajorStatistics `json:"majorStatistics"`
}
