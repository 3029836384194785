package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/dberrors"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/grading"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/logger"
)

// GradeRepository persists grades and computes grade aggregates
type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) (int64, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.GradeWithCourse, error)
	StudentGPA(ctx context.Context, studentID int64) (*models.GPAAggregate, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.CourseGradeRow, error)
}

type gradeRepository struct {
	db DBTX
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db DBTX) GradeRepository {
	return &gradeRepository{db: db}
}

// Create inserts a grade. Missing student or course and duplicate enrollments
// are reported through the storage constraints.
func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) (int64, error) {
	query := `
		INSERT INTO grades (student_id, course_id, semester, academic_year, grade_value, grade_letter)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		grade.StudentID,
		grade.CourseID,
		grade.Semester,
		grade.AcademicYear,
		grade.GradeValue,
		grade.GradeLetter,
	).Scan(&grade.ID, &grade.CreatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, constraintGradeEnrollment):
			return 0, ErrDuplicateGrade
		case dberrors.IsForeignKeyError(err, constraintGradeStudentFK):
			return 0, ErrStudentReference
		case dberrors.IsForeignKeyError(err, constraintGradeCourseFK):
			return 0, ErrCourseReference
		case dberrors.IsCheckViolation(err):
			return 0, ErrGradeConstraint
		}
		logger.Error().Err(err).
			Int64("studentID", grade.StudentID).
			Int64("courseID", grade.CourseID).
			Msg("Error inserting grade")
		return 0, fmt.Errorf("error inserting grade: %w", err)
	}

	return grade.ID, nil
}

// ListByStudent returns a student's grades joined with their course, ordered by semester then academic year
func (r *gradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.GradeWithCourse, error) {
	query := `
		SELECT g.id, g.student_id, g.course_id, g.semester, g.academic_year,
			g.grade_value::float8, g.grade_letter, g.created_at,
			c.code, c.name, c.credits
		FROM grades g
		JOIN courses c ON g.course_id = c.id
		WHERE g.student_id = $1
		ORDER BY g.semester, g.academic_year, g.id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student grades: %w", err)
	}

	return collect(rows, func(row pgx.Rows, g *models.GradeWithCourse) error {
		return row.Scan(
			&g.ID,
			&g.StudentID,
			&g.CourseID,
			&g.Semester,
			&g.AcademicYear,
			&g.GradeValue,
			&g.GradeLetter,
			&g.CreatedAt,
			&g.CourseCode,
			&g.CourseName,
			&g.Credits,
		)
	})
}

// StudentGPA computes sum(grade*credits)/sum(credits) over all of a student's grades
func (r *gradeRepository) StudentGPA(ctx context.Context, studentID int64) (*models.GPAAggregate, error) {
	query := `
		SELECT COUNT(g.id),
			COALESCE(SUM(c.credits), 0),
			COALESCE(SUM(g.grade_value * c.credits), 0)::float8
		FROM grades g
		JOIN courses c ON g.course_id = c.id
		WHERE g.student_id = $1
	`

	var agg models.GPAAggregate
	if err := r.db.QueryRow(ctx, query, studentID).Scan(
		&agg.TotalCourses,
		&agg.TotalCredits,
		&agg.WeightedSum,
	); err != nil {
		return nil, fmt.Errorf("error computing gpa: %w", err)
	}

	agg.GPA = grading.Divide(agg.WeightedSum, agg.TotalCredits)
	return &agg, nil
}

// ListByCourse returns every grade of a course joined with the student that earned it
func (r *gradeRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.CourseGradeRow, error) {
	query := `
		SELECT g.id, g.student_id, g.course_id, g.semester, g.academic_year,
			g.grade_value::float8, g.grade_letter, g.created_at,
			s.nim, s.name
		FROM grades g
		JOIN students s ON g.student_id = s.id
		WHERE g.course_id = $1
		ORDER BY s.nim, g.academic_year, g.semester
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course grades: %w", err)
	}

	return collect(rows, func(row pgx.Rows, g *models.CourseGradeRow) error {
		return row.Scan(
			&g.ID,
			&g.StudentID,
			&g.CourseID,
			&g.Semester,
			&g.AcademicYear,
			&g.GradeValue,
			&g.GradeLetter,
			&g.CreatedAt,
			&g.StudentNIM,
			&g.StudentName,
		)
	})
}
