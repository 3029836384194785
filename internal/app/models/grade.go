package models

import "time"

// Grade is one result of a student in a course for a semester and academic year.
type Grade struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	CourseID     int64     `json:"courseId" db:"course_id"`
	Semester     int       `json:"semester" db:"semester"`
	AcademicYear string    `json:"academicYear" db:"academic_year"`
	GradeValue   float64   `json:"gradeValue" db:"grade_value"`
	GradeLetter  string    `json:"gradeLetter" db:"grade_letter"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// GradeWithCourse is a grade joined with its course.
type GradeWithCourse struct {
	Grade
	CourseCode string `json:"courseCode" db:"course_code"`
	CourseName string `json:"courseName" db:"course_name"`
	Credits    int    `json:"credits" db:"credits"`
}

// CourseGradeRow is a grade joined with the student that earned it.
type CourseGradeRow struct {
	Grade
	StudentNIM  string `json:"nim" db:"nim"`
	StudentName string `json:"studentName" db:"name"`
}

// GPAAggregate is the credit-weighted average over all of a student's grades.
type GPAAggregate struct {
	TotalCourses int     `json:"totalCourses"`
	TotalCredits int     `json:"totalCredits"`
	WeightedSum  float64 `json:"-"`
	GPA          float64 `json:"gpa"`
}

// SemesterRecord groups the grades of one (semester, academic year).
type SemesterRecord struct {
	Semester     int               `json:"semester"`
	AcademicYear string            `json:"academicYear"`
	Courses      []GradeWithCourse `json:"courses"`
	TotalCredits int               `json:"totalCredits"`
	WeightedSum  float64           `json:"-"`
	GPA          float64           `json:"semesterGpa"`
}

// AcademicRecord is a student's transcript.
type AcademicRecord struct {
	Student      *StudentWithStats `json:"student"`
	Semesters    []SemesterRecord  `json:"semesters"`
	OverallGPA   float64           `json:"overallGpa"`
	TotalCredits int               `json:"totalCredits"`
	TotalCourses int               `json:"totalCourses"`
	Standing     string            `json:"academicStanding"`
}
