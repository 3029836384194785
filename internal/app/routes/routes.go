package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	gradeController *controllers.GradeController,
	catalogController *controllers.CatalogController,
	reportController *controllers.ReportController,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	students := v1.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.SearchStudents)
		students.GET("/by-nim/:nim", studentController.GetStudentByNIM)
		students.GET("/:id", studentController.GetStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
		students.GET("/:id/academic-record", studentController.GetAcademicRecord)
		students.GET("/:id/courses", studentController.GetStudentCourses)
	}

	v1.POST("/grades", gradeController.AddGrade)

	courses := v1.Group("/courses")
	{
		courses.GET("", catalogController.GetAllCourses)
		courses.GET("/:id", catalogController.GetCourseByID)
		courses.GET("/:id/statistics", gradeController.GetCourseStatistics)
	}

	v1.GET("/majors", catalogController.GetAllMajors)
	v1.GET("/summary", studentController.GetSummary)

	reports := v1.Group("/reports")
	{
		reports.GET("/students", reportController.ExportStudents)
		reports.GET("/students/:id/transcript", reportController.ExportTranscript)
	}
}
