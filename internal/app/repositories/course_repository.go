package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
)

// CourseRepository reads course reference data
type CourseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	Ensure(ctx context.Context, course *models.Course) (bool, error)
}

type courseRepository struct {
	db DBTX
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db DBTX) CourseRepository {
	return &courseRepository{db: db}
}

var courseColumns = []string{"id", "code", "name", "credits", "semester", "major_code"}

func scanCourse(row pgx.Row, c *models.Course) error {
	return row.Scan(&c.ID, &c.Code, &c.Name, &c.Credits, &c.Semester, &c.MajorCode)
}

// List returns courses filtered by major code and/or semester, ordered by semester then code
func (r *courseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	builder := psql.Select(courseColumns...).From("courses")
	if filter.MajorCode != "" {
		builder = builder.Where(sq.Eq{"major_code": filter.MajorCode})
	}
	if filter.Semester > 0 {
		builder = builder.Where(sq.Eq{"semester": filter.Semester})
	}

	query, args, err := builder.OrderBy("semester", "code").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building course query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	return collect(rows, func(row pgx.Rows, c *models.Course) error {
		return scanCourse(row, c)
	})
}

func (r *courseRepository) getOne(ctx context.Context, where sq.Eq) (*models.Course, error) {
	query, args, err := psql.Select(courseColumns...).From("courses").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building course query: %w", err)
	}

	var course models.Course
	if err := scanCourse(r.db.QueryRow(ctx, query, args...), &course); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetByID retrieves a course by id
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByCode retrieves a course by code
func (r *courseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return r.getOne(ctx, sq.Eq{"code": code})
}

// Ensure inserts course unless its code already exists. It reports whether a row was inserted.
func (r *courseRepository) Ensure(ctx context.Context, course *models.Course) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO courses (code, name, credits, semester, major_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING`,
		course.Code, course.Name, course.Credits, course.Semester, course.MajorCode,
	)
	if err != nil {
		return false, fmt.Errorf("error ensuring course %s: %w", course.Code, err)
	}

	return tag.RowsAffected() > 0, nil
}
