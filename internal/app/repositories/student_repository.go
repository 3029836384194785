package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/dberrors"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/logger"
)

// StudentRepository persists student records
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	Update(ctx context.Context, id int64, student *models.Student) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithStats, error)
	GetByID(ctx context.Context, id int64) (*models.StudentWithStats, error)
	GetByNIM(ctx context.Context, nim string) (*models.StudentWithStats, error)
	NIMExists(ctx context.Context, nim string, excludeID int64) (bool, error)
}

type studentRepository struct {
	db DBTX
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db DBTX) StudentRepository {
	return &studentRepository{db: db}
}

// likeEscaper escapes ILIKE wildcards in user-supplied search terms
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func studentWithStatsQuery() sq.SelectBuilder {
	return psql.Select(
		"s.id", "s.nim", "s.name", "s.major", "s.email", "s.phone",
		"s.admission_year", "s.created_at", "s.updated_at",
		"COUNT(g.id) AS course_count",
		"COALESCE(AVG(g.grade_value), 0)::float8 AS avg_grade",
	).
		From("students s").
		LeftJoin("grades g ON s.id = g.student_id")
}

func scanStudentWithStats(row pgx.Row, s *models.StudentWithStats) error {
	return row.Scan(
		&s.ID,
		&s.NIM,
		&s.Name,
		&s.Major,
		&s.Email,
		&s.Phone,
		&s.AdmissionYear,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.CourseCount,
		&s.AvgGrade,
	)
}

// Create inserts a student and returns its generated id
func (r *studentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	query := `
		INSERT INTO students (nim, name, major, email, phone, admission_year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.NIM,
		student.Name,
		student.Major,
		student.Email,
		student.Phone,
		student.AdmissionYear,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintStudentNIM) {
			return 0, ErrDuplicateNIM
		}
		logger.Error().Err(err).Str("nim", student.NIM).Msg("Error inserting student")
		return 0, fmt.Errorf("error inserting student: %w", err)
	}

	return student.ID, nil
}

// Update overwrites every mutable column of student id. It reports whether a row was changed.
func (r *studentRepository) Update(ctx context.Context, id int64, student *models.Student) (bool, error) {
	query := `
		UPDATE students
		SET nim = $1, name = $2, major = $3, email = $4, phone = $5,
			admission_year = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
	`

	tag, err := r.db.Exec(ctx, query,
		student.NIM,
		student.Name,
		student.Major,
		student.Email,
		student.Phone,
		student.AdmissionYear,
		id,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintStudentNIM) {
			return false, ErrDuplicateNIM
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error updating student")
		return false, fmt.Errorf("error updating student: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a student; grades go with it through ON DELETE CASCADE
func (r *studentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error deleting student")
		return false, fmt.Errorf("error deleting student: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// List returns students matching filter ordered by NIM, each with its grade aggregates
func (r *studentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithStats, error) {
	conditions := sq.And{}

	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		conditions = append(conditions, sq.Or{
			sq.ILike{"s.nim": pattern},
			sq.ILike{"s.name": pattern},
		})
	}
	if filter.Major != "" {
		conditions = append(conditions, sq.Eq{"s.major": filter.Major})
	}
	if filter.Year > 0 {
		conditions = append(conditions, sq.Eq{"s.admission_year": filter.Year})
	}

	builder := studentWithStatsQuery()
	if len(conditions) > 0 {
		builder = builder.Where(conditions)
	}
	builder = builder.GroupBy("s.id").OrderBy("s.nim")

	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build student search query")
		return nil, fmt.Errorf("error building student query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching students: %w", err)
	}

	return collect(rows, func(row pgx.Rows, s *models.StudentWithStats) error {
		return scanStudentWithStats(row, s)
	})
}

func (r *studentRepository) getOne(ctx context.Context, where sq.Eq) (*models.StudentWithStats, error) {
	query, args, err := studentWithStatsQuery().Where(where).GroupBy("s.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building student query: %w", err)
	}

	var student models.StudentWithStats
	if err := scanStudentWithStats(r.db.QueryRow(ctx, query, args...), &student); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetByID retrieves a student by numeric id
func (r *studentRepository) GetByID(ctx context.Context, id int64) (*models.StudentWithStats, error) {
	return r.getOne(ctx, sq.Eq{"s.id": id})
}

// GetByNIM retrieves a student by NIM
func (r *studentRepository) GetByNIM(ctx context.Context, nim string) (*models.StudentWithStats, error) {
	return r.getOne(ctx, sq.Eq{"s.nim": nim})
}

// NIMExists checks whether another student (id != excludeID) already holds nim.
// Pass 0 to check against every student.
func (r *studentRepository) NIMExists(ctx context.Context, nim string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE nim = $1 AND id <> $2)`,
		nim, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking nim uniqueness: %w", err)
	}

	return exists, nil
}
