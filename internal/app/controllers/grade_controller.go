package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models/dto"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/services"
	"github.com/ArkanTsabit123/Student-Management-System/internal/middleware"
)

// GradeController handles grade entry and course statistics
type GradeController struct {
	gradeService services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// AddGrade records a grade for a student in a course
// @Summary Add a grade
// @Tags grades
// @Accept json
// @Produce json
// @Param request body dto.AddGradeRequest true "Grade entry"
// @Success 201 {object} dto.AddGradeResponse
// @Failure 400 {object} dto.AddGradeResponse "Grade out of range"
// @Failure 404 {object} dto.AddGradeResponse "Student or course not found"
// @Failure 409 {object} dto.AddGradeResponse "Grade already recorded"
// @Router /grades [post]
func (c *GradeController) AddGrade(ctx *gin.Context) {
	var req dto.AddGradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.gradeService.AddGrade(ctx.Request.Context(), services.GradeInput{
		StudentID:    req.StudentID,
		CourseID:     req.CourseID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		GradeValue:   *req.GradeValue,
	})
	middleware.HandleOperation(ctx, http.StatusCreated, resp, err)
}

// GetCourseStatistics summarises every grade recorded for a course
// @Router /courses/{id}/statistics [get]
func (c *GradeController) GetCourseStatistics(ctx *gin.Context) {
	id, valid := parseID(ctx, "id", "Course")
	if !valid {
		return
	}

	stats, err := c.gradeService.CourseStatistics(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, stats)
}
