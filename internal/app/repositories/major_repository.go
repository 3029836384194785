package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
)

// MajorRepository reads major reference data
type MajorRepository interface {
	List(ctx context.Context) ([]models.Major, error)
	GetByName(ctx context.Context, name string) (*models.Major, error)
	Statistics(ctx context.Context) ([]models.MajorStatistics, error)
	Ensure(ctx context.Context, major *models.Major) (bool, error)
}

type majorRepository struct {
	db DBTX
}

// NewMajorRepository creates a new major repository
func NewMajorRepository(db DBTX) MajorRepository {
	return &majorRepository{db: db}
}

// List returns all majors ordered by code
func (r *majorRepository) List(ctx context.Context) ([]models.Major, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name, faculty FROM majors ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("error listing majors: %w", err)
	}

	return collect(rows, func(row pgx.Rows, m *models.Major) error {
		return row.Scan(&m.ID, &m.Code, &m.Name, &m.Faculty)
	})
}

// GetByName retrieves a major by its display name
func (r *majorRepository) GetByName(ctx context.Context, name string) (*models.Major, error) {
	var m models.Major
	err := r.db.QueryRow(ctx,
		`SELECT id, code, name, faculty FROM majors WHERE name = $1`, name,
	).Scan(&m.ID, &m.Code, &m.Name, &m.Faculty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving major: %w", err)
	}

	return &m, nil
}

// Statistics returns, per major in code order, the number of students and the mean of their grades
func (r *majorRepository) Statistics(ctx context.Context) ([]models.MajorStatistics, error) {
	query := `
		SELECT m.code, m.name, m.faculty,
			COUNT(DISTINCT s.id),
			COALESCE(AVG(g.grade_value), 0)::float8
		FROM majors m
		LEFT JOIN students s ON s.major = m.name
		LEFT JOIN grades g ON g.student_id = s.id
		GROUP BY m.code, m.name, m.faculty
		ORDER BY m.code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error computing major statistics: %w", err)
	}

	return collect(rows, func(row pgx.Rows, s *models.MajorStatistics) error {
		return row.Scan(&s.Code, &s.Major, &s.Faculty, &s.StudentCount, &s.AvgGrade)
	})
}

// Ensure inserts major unless its code already exists
func (r *majorRepository) Ensure(ctx context.Context, major *models.Major) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO majors (code, name, faculty)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO NOTHING`,
		major.Code, major.Name, major.Faculty,
	)
	if err != nil {
		return false, fmt.Errorf("error ensuring major %s: %w", major.Code, err)
	}

	return tag.RowsAffected() > 0, nil
}
