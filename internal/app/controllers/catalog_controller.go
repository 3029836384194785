package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models/dto"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/services"
	"github.com/ArkanTsabit123/Student-Management-System/internal/middleware"
)

// CatalogController serves majors and courses
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GetAllMajors lists the majors
// @Router /majors [get]
func (c *CatalogController) GetAllMajors(ctx *gin.Context) {
	majors, err := c.catalogService.ListMajors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, majors)
}

// GetAllCourses lists courses, optionally by major code and semester
// @Param major query string false "Major code, e.g. TI"
// @Param semester query int false "Semester"
// @Router /courses [get]
func (c *CatalogController) GetAllCourses(ctx *gin.Context) {
	var query dto.CourseListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	courses, err := c.catalogService.ListCourses(ctx.Request.Context(), models.CourseFilter{
		MajorCode: query.Major,
		Semester:  query.Semester,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, courses)
}

// GetCourseByID returns one course
// @Router /courses/{id} [get]
func (c *CatalogController) GetCourseByID(ctx *gin.Context) {
	id, valid := parseID(ctx, "id", "Course")
	if !valid {
		return
	}

	course, err := c.catalogService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, course)
}
