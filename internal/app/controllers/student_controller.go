package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models/dto"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/services"
	"github.com/ArkanTsabit123/Student-Management-System/internal/middleware"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
	gradeService   services.GradeService
	catalogService services.CatalogService
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService services.StudentService,
	gradeService services.GradeService,
	catalogService services.CatalogService,
) *StudentController {
	return &StudentController{
		studentService: studentService,
		gradeService:   gradeService,
		catalogService: catalogService,
	}
}

// CreateStudent registers a new student
// @Summary Create a new student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.OperationResult
// @Failure 400 {object} dto.OperationResult "Invalid student data"
// @Failure 409 {object} dto.OperationResult "NIM already registered"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.studentService.Create(ctx.Request.Context(), req.ToModel())
	middleware.HandleOperation(ctx, http.StatusCreated, result, err)
}

// SearchStudents lists students filtered by free text, major and admission year
// @Summary Search students
// @Tags students
// @Produce json
// @Param q query string false "NIM or name fragment"
// @Param major query string false "Major name"
// @Param year query int false "Admission year"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentWithStats}
// @Router /students [get]
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	var query dto.StudentSearchQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	students, err := c.studentService.Search(ctx.Request.Context(), query.ToFilter())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, students)
}

// GetStudent returns a student with grades and GPA
// @Summary Get student details
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.StudentDetail}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, valid := parseID(ctx, "id", "Student")
	if !valid {
		return
	}

	detail, err := c.studentService.Detail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if detail == nil {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, services.MsgStudentNotFound))
		return
	}
	ok(ctx, detail)
}

// GetStudentByNIM looks a student up by NIM
// @Router /students/by-nim/{nim} [get]
func (c *StudentController) GetStudentByNIM(ctx *gin.Context) {
	student, err := c.studentService.GetByNIM(ctx.Request.Context(), ctx.Param("nim"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, student)
}

// UpdateStudent applies a partial update
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.OperationResult
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, valid := parseID(ctx, "id", "Student")
	if !valid {
		return
	}

	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	update := req.ToModel()
	if update.IsEmpty() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "No fields to update")))
		return
	}

	result, err := c.studentService.Update(ctx.Request.Context(), id, update)
	middleware.HandleOperation(ctx, http.StatusOK, result, err)
}

// DeleteStudent removes a student and their grades
// @Summary Delete a student
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.OperationResult
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, valid := parseID(ctx, "id", "Student")
	if !valid {
		return
	}

	result, err := c.studentService.Delete(ctx.Request.Context(), id)
	middleware.HandleOperation(ctx, http.StatusOK, result, err)
}

// GetAcademicRecord returns the transcript grouped by semester
// @Summary Get academic record
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.AcademicRecord}
// @Router /students/{id}/academic-record [get]
func (c *StudentController) GetAcademicRecord(ctx *gin.Context) {
	id, valid := parseID(ctx, "id", "Student")
	if !valid {
		return
	}

	record, err := c.gradeService.AcademicRecord(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, record)
}

// GetStudentCourses lists the courses offered by the student's major
// @Router /students/{id}/courses [get]
func (c *StudentController) GetStudentCourses(ctx *gin.Context) {
	id, valid := parseID(ctx, "id", "Student")
	if !valid {
		return
	}

	courses, err := c.catalogService.CoursesForStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, courses)
}

// GetSummary returns the academic summary across all students
// @Summary Academic summary
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.AcademicSummary}
// @Router /summary [get]
func (c *StudentController) GetSummary(ctx *gin.Context) {
	summary, err := c.studentService.Summary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, summary)
}
