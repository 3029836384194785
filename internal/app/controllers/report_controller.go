package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models/dto"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/services"
	"github.com/ArkanTsabit123/Student-Management-System/internal/middleware"
)

// ReportController streams spreadsheet reports
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

func attach(ctx *gin.Context, buf *bytes.Buffer, filename string) {
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportStudents streams the students report, filtered like GET /students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /reports/students [get]
func (c *ReportController) ExportStudents(ctx *gin.Context) {
	var query dto.StudentSearchQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	buf, filename, err := c.reportService.ExportStudents(ctx.Request.Context(), query.ToFilter())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	attach(ctx, buf, filename)
}

// ExportTranscript streams one student's transcript
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /reports/students/{id}/transcript [get]
func (c *ReportController) ExportTranscript(ctx *gin.Context) {
	id, valid := parseID(ctx, "id", "Student")
	if !valid {
		return
	}

	buf, filename, err := c.reportService.ExportTranscript(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	attach(ctx, buf, filename)
}
