package models

// Course represents a course offered by a major.
type Course struct {
	ID        int64  `json:"id" db:"id"`
	Code      string `json:"code" db:"code"`
	Name      string `json:"name" db:"name"`
	Credits   int    `json:"credits" db:"credits"`
	Semester  int    `json:"semester" db:"semester"`
	MajorCode string `json:"majorCode" db:"major_code"`
}

// CourseFilter narrows a course listing. Zero values mean no filter.
type CourseFilter struct {
	MajorCode string
	Semester  int
}

// CourseStatistics summarises every grade recorded for one course.
type CourseStatistics struct {
	Course            *Course          `json:"course"`
	TotalStudents     int              `json:"totalStudents"`
	AverageGrade      float64          `json:"averageGrade"`
	GradeDistribution map[string]int   `json:"gradeDistribution"`
	Grades            []CourseGradeRow `json:"grades"`
}
