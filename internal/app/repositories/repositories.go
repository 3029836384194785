package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/logger"
)

// Repository errors. Services translate these into application errors.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateNIM     = errors.New("nim already exists")
	ErrDuplicateGrade   = errors.New("grade already recorded for this enrollment")
	ErrStudentReference = errors.New("referenced student does not exist")
	ErrCourseReference  = errors.New("referenced course does not exist")
	ErrGradeConstraint  = errors.New("grade violates a check constraint")
)

// Constraint names declared by the schema migration
const (
	constraintStudentNIM      = "students_nim_key"
	constraintGradeEnrollment = "uq_grades_enrollment"
	constraintGradeStudentFK  = "fk_grades_student"
	constraintGradeCourseFK   = "fk_grades_course"
)

// psql builds queries with $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Students StudentRepository
	Grades   GradeRepository
	Courses  CourseRepository
	Majors   MajorRepository

	db DBTX
}

// NewRepositories initializes all repositories on top of db
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Students: NewStudentRepository(db),
		Grades:   NewGradeRepository(db),
		Courses:  NewCourseRepository(db),
		Majors:   NewMajorRepository(db),
		db:       db,
	}
}

// TxFn runs with repositories bound to one transaction
type TxFn func(ctx context.Context, tx *Repositories) error

// WithTransaction runs fn inside a transaction, committing when it returns nil
// and rolling back on error or panic. Repositories assembled by hand without a
// database handle (tests) run fn directly.
func (r *Repositories) WithTransaction(ctx context.Context, fn TxFn) error {
	if r.db == nil {
		return fn(ctx, r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rollback on panic
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// collect scans every row with scan and closes rows
func collect[T any](rows pgx.Rows, scan func(pgx.Rows, *T) error) ([]T, error) {
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var item T
		if err := scan(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
