package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/grading"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/helpers"
)

// Sheet names
const (
	SheetStudents    = "Students"
	SheetSummary     = "Summary"
	SheetStudentInfo = "Student Information"

	maxColumnWidth = 50
	msgReportFail  = "Failed to generate report"
)

// ReportService renders spreadsheets from service data.
// Reports are returned as an in-memory workbook plus a suggested file name.
type ReportService interface {
	ExportStudents(ctx context.Context, filter models.StudentFilter) (*bytes.Buffer, string, error)
	ExportTranscript(ctx context.Context, studentID int64) (*bytes.Buffer, string, error)
}

type reportService struct {
	students StudentService
	grades   GradeService
	logger   zerolog.Logger
	now      func() time.Time
}

// NewReportService creates a new report service
func NewReportService(students StudentService, grades GradeService, logger zerolog.Logger) ReportService {
	return &reportService{
		students: students,
		grades:   grades,
		logger:   logger,
		now:      time.Now,
	}
}

// sheetWriter appends rows to one sheet and tracks column widths
type sheetWriter struct {
	f      *excelize.File
	name   string
	row    int
	widths map[int]int
	bold   int
}

func newSheetWriter(f *excelize.File, name string, bold int) (*sheetWriter, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, err
	}
	return &sheetWriter{f: f, name: name, row: 1, widths: make(map[int]int), bold: bold}, nil
}

func (w *sheetWriter) write(values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.name, cell, &values); err != nil {
		return err
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		if n := utf8.RuneCountInString(fmt.Sprint(v)); n > w.widths[i] {
			w.widths[i] = n
		}
	}
	w.row++
	return nil
}

func (w *sheetWriter) header(values ...interface{}) error {
	row := w.row
	if err := w.write(values...); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	return w.f.SetCellStyle(w.name, first, last, w.bold)
}

func (w *sheetWriter) skip(n int) {
	w.row += n
}

// fit sets each column to min(longest value + 2, 50)
func (w *sheetWriter) fit() error {
	for i, n := range w.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := n + 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := w.f.SetColWidth(w.name, col, col, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

// workbook opens a file with a bold header style; the default sheet is removed by finish
func workbook() (*excelize.File, int, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, bold, nil
}

func finish(f *excelize.File, writers ...*sheetWriter) (*bytes.Buffer, error) {
	for _, w := range writers {
		if err := w.fit(); err != nil {
			return nil, err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if len(writers) > 0 {
		if idx, err := f.GetSheetIndex(writers[0].name); err == nil {
			f.SetActiveSheet(idx)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *reportService) reportError(err error, report string) error {
	s.logger.Error().Err(err).Str("report", report).Msg("Failed to write workbook")
	return apperrors.NewCustomError(apperrors.ErrStorage, msgReportFail).WithCause(err)
}

// ExportStudents writes the students matching filter plus a summary sheet
func (s *reportService) ExportStudents(ctx context.Context, filter models.StudentFilter) (*bytes.Buffer, string, error) {
	students, err := s.students.Search(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	summary, err := s.students.Summary(ctx)
	if err != nil {
		return nil, "", err
	}

	buf, err := s.renderStudents(students, summary)
	if err != nil {
		return nil, "", s.reportError(err, "students")
	}

	filename := fmt.Sprintf("students_report_%s.xlsx", helpers.FileTimestamp(s.now()))
	s.logger.Info().Int("students", len(students)).Str("file", filename).Msg("Students report generated")
	return buf, filename, nil
}

func (s *reportService) renderStudents(students []models.StudentWithStats, summary *models.AcademicSummary) (*bytes.Buffer, error) {
	f, bold, err := workbook()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	list, err := newSheetWriter(f, SheetStudents, bold)
	if err != nil {
		return nil, err
	}
	if err := list.header("Student ID", "Name", "Major", "Admission Year", "Course Count", "Average Grade", "Email", "Phone"); err != nil {
		return nil, err
	}
	for _, st := range students {
		if err := list.write(
			st.NIM,
			st.Name,
			st.Major,
			st.AdmissionYear,
			st.CourseCount,
			grading.Round2(st.AvgGrade),
			helpers.StringValue(st.Email),
			helpers.StringValue(st.Phone),
		); err != nil {
			return nil, err
		}
	}

	sum, err := newSheetWriter(f, SheetSummary, bold)
	if err != nil {
		return nil, err
	}
	if err := sum.header("Metric", "Value"); err != nil {
		return nil, err
	}
	for _, row := range [][]interface{}{
		{"Total Students", summary.TotalStudents},
		{"Students with Grades", summary.StudentsWithGrades},
		{"Average GPA", summary.AverageGPA},
	} {
		if err := sum.write(row...); err != nil {
			return nil, err
		}
	}
	sum.skip(1)
	if err := sum.header("Major", "Students", "Average Grade"); err != nil {
		return nil, err
	}
	for _, ms := range summary.MajorStatistics {
		if err := sum.write(ms.Major, ms.StudentCount, grading.Round2(ms.AvgGrade)); err != nil {
			return nil, err
		}
	}

	return finish(f, list, sum)
}

// semesterSheetName is unique per (semester, academic year) and within excel's 31 char limit
func semesterSheetName(rec models.SemesterRecord) string {
	return fmt.Sprintf("Semester %d %s", rec.Semester, strings.ReplaceAll(rec.AcademicYear, "/", "-"))
}

// ExportTranscript writes a student's information sheet and one sheet per semester
func (s *reportService) ExportTranscript(ctx context.Context, studentID int64) (*bytes.Buffer, string, error) {
	record, err := s.grades.AcademicRecord(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	buf, err := s.renderTranscript(record)
	if err != nil {
		return nil, "", s.reportError(err, "transcript")
	}

	filename := fmt.Sprintf("transcript_%s_%s.xlsx", record.Student.NIM, helpers.FileTimestamp(s.now()))
	s.logger.Info().Int64("studentID", studentID).Str("file", filename).Msg("Transcript generated")
	return buf, filename, nil
}

func (s *reportService) renderTranscript(record *models.AcademicRecord) (*bytes.Buffer, error) {
	f, bold, err := workbook()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := newSheetWriter(f, SheetStudentInfo, bold)
	if err != nil {
		return nil, err
	}
	st := record.Student
	if err := info.header("Field", "Value"); err != nil {
		return nil, err
	}
	for _, row := range [][]interface{}{
		{"Student ID", st.NIM},
		{"Name", st.Name},
		{"Major", st.Major},
		{"Admission Year", st.AdmissionYear},
		{"GPA", record.OverallGPA},
		{"Total Credits", record.TotalCredits},
		{"Academic Standing", record.Standing},
	} {
		if err := info.write(row...); err != nil {
			return nil, err
		}
	}

	var letters []string
	for _, sem := range record.Semesters {
		for _, c := range sem.Courses {
			letters = append(letters, c.GradeLetter)
		}
	}
	info.skip(1)
	if err := info.header("Grade", "Count"); err != nil {
		return nil, err
	}
	dist := grading.Distribution(letters)
	for _, letter := range grading.Letters {
		if err := info.write(letter, dist[letter]); err != nil {
			return nil, err
		}
	}

	writers := []*sheetWriter{info}
	for _, sem := range record.Semesters {
		w, err := newSheetWriter(f, semesterSheetName(sem), bold)
		if err != nil {
			return nil, err
		}
		if err := w.header("Course Code", "Course Name", "Credits", "Numeric Grade", "Letter Grade"); err != nil {
			return nil, err
		}
		for _, c := range sem.Courses {
			if err := w.write(c.CourseCode, c.CourseName, c.Credits, c.GradeValue, c.GradeLetter); err != nil {
				return nil, err
			}
		}
		w.skip(1)
		for _, row := range [][]interface{}{
			{"Academic Year", sem.AcademicYear},
			{"Total Credits", sem.TotalCredits},
			{"Semester GPA", grading.Round2(sem.GPA)},
		} {
			if err := w.write(row...); err != nil {
				return nil, err
			}
		}
		writers = append(writers, w)
	}

	return finish(f, writers...)
}
