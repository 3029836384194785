package dto

// AddGradeRequest is the body of POST /grades
type AddGradeRequest struct {
	StudentID    int64    `json:"studentId" validate:"required,gt=0"`
	CourseID     int64    `json:"courseId" validate:"required,gt=0"`
	Semester     int      `json:"semester" validate:"required,gt=0"`
	AcademicYear string   `json:"academicYear" validate:"required"`
	GradeValue   *float64 `json:"gradeValue" validate:"required"`
}

// AddGradeResponse is returned after a grade is recorded
type AddGradeResponse struct {
	OperationResult
	Letter string `json:"gradeLetter,omitempty"`
}

// CourseListQuery binds GET /courses query parameters
type CourseListQuery struct {
	Major    string `form:"major"`
	Semester int    `form:"semester" validate:"min=0"`
}
