package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models/dto"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/repositories"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/grading"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/helpers"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/validation"
)

// Student service messages
const (
	MsgStudentAdded      = "Student successfully added"
	MsgStudentUpdated    = "Student data successfully updated"
	MsgStudentNotUpdated = "Failed to update student data"
	MsgStudentNotFound   = "Student not found"
	MsgStudentNotDeleted = "Failed to delete student"
	msgNIMRegistered     = "NIM %s is already registered"
	msgNIMUsed           = "NIM %s is already used"
	msgStudentDeleted    = "Student %s deleted successfully"
)

// StudentService defines the student lifecycle operations.
// Every error it returns is an *apperrors.CustomError.
type StudentService interface {
	Create(ctx context.Context, student *models.Student) (dto.OperationResult, error)
	Search(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithStats, error)
	Get(ctx context.Context, id int64) (*models.StudentWithStats, error)
	GetByNIM(ctx context.Context, nim string) (*models.StudentWithStats, error)
	Update(ctx context.Context, id int64, update models.StudentUpdate) (dto.OperationResult, error)
	Detail(ctx context.Context, id int64) (*models.StudentDetail, error)
	Summary(ctx context.Context) (*models.AcademicSummary, error)
	Delete(ctx context.Context, id int64) (dto.OperationResult, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	repos       *repositories.Repositories
	logger      zerolog.Logger
	currentYear func() int
}

// NewStudentService creates a new student service
func NewStudentService(repos *repositories.Repositories, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		repos:       repos,
		logger:      logger,
		currentYear: helpers.CurrentYear,
	}
}

// failure pairs the uniform failure shape with the classifying error
func failure(err error) (dto.OperationResult, error) {
	return dto.NewFailureResult(err), err
}

// storageError normalizes anything a repository returned that is not already classified
func storageError(err error) error {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) {
		return err
	}
	return apperrors.NewStorageError(err)
}

func studentInput(s *models.Student) validation.StudentInput {
	return validation.StudentInput{
		NIM:           s.NIM,
		Name:          s.Name,
		Major:         s.Major,
		AdmissionYear: s.AdmissionYear,
		Email:         helpers.StringValue(s.Email),
		Phone:         helpers.StringValue(s.Phone),
	}
}

func (s *studentServiceImpl) validate(student *models.Student) error {
	return validation.ValidateStudentAt(studentInput(student), s.currentYear()).Err()
}

// normalizeOptional stores blank email/phone as NULL
func normalizeOptional(student *models.Student) {
	student.Email = helpers.NullableString(student.Email)
	student.Phone = helpers.NullableString(student.Phone)
}

// Create validates and inserts a student. The uniqueness check and the insert share a transaction.
func (s *studentServiceImpl) Create(ctx context.Context, student *models.Student) (dto.OperationResult, error) {
	if student == nil {
		return failure(apperrors.NewValidationError("Student data is required"))
	}
	if err := s.validate(student); err != nil {
		return failure(err)
	}
	normalizeOptional(student)

	var id int64
	err := s.repos.WithTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		exists, err := tx.Students.NIMExists(ctx, student.NIM, 0)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError(apperrors.ErrStudentIDAlreadyExists, fmt.Sprintf(msgNIMRegistered, student.NIM))
		}

		id, err = tx.Students.Create(ctx, student)
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateNIM) {
			err = apperrors.NewConflictError(apperrors.ErrStudentIDAlreadyExists, fmt.Sprintf(msgNIMRegistered, student.NIM))
		}
		if errors.Is(err, apperrors.ErrStudentIDAlreadyExists) {
			s.logger.Warn().Str("nim", student.NIM).Msg("Rejected duplicate NIM")
		} else {
			s.logger.Error().Err(err).Str("nim", student.NIM).Msg("Failed to create student")
		}
		return failure(storageError(err))
	}

	s.logger.Info().Int64("studentID", id).Str("nim", student.NIM).Msg("Student created")
	return dto.NewSuccessResult(MsgStudentAdded, id), nil
}

// Search lists students matching filter ordered by NIM
func (s *studentServiceImpl) Search(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithStats, error) {
	filter.SearchTerm = strings.TrimSpace(filter.SearchTerm)
	filter.Major = strings.TrimSpace(filter.Major)

	students, err := s.repos.Students.List(ctx, filter)
	if err != nil {
		return nil, storageError(err)
	}
	return students, nil
}

func (s *studentServiceImpl) lookup(fetch func() (*models.StudentWithStats, error)) (*models.StudentWithStats, error) {
	student, err := fetch()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, MsgStudentNotFound)
		}
		return nil, storageError(err)
	}
	return student, nil
}

// Get retrieves a student by numeric id
func (s *studentServiceImpl) Get(ctx context.Context, id int64) (*models.StudentWithStats, error) {
	return s.lookup(func() (*models.StudentWithStats, error) {
		return s.repos.Students.GetByID(ctx, id)
	})
}

// GetByNIM retrieves a student by NIM
func (s *studentServiceImpl) GetByNIM(ctx context.Context, nim string) (*models.StudentWithStats, error) {
	return s.lookup(func() (*models.StudentWithStats, error) {
		return s.repos.Students.GetByNIM(ctx, strings.TrimSpace(nim))
	})
}

// merge applies the supplied fields of update over current
func merge(current models.Student, update models.StudentUpdate) models.Student {
	if update.NIM != nil {
		current.NIM = *update.NIM
	}
	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Major != nil {
		current.Major = *update.Major
	}
	if update.AdmissionYear != nil {
		current.AdmissionYear = *update.AdmissionYear
	}
	if update.Email != nil {
		current.Email = update.Email
	}
	if update.Phone != nil {
		current.Phone = update.Phone
	}
	return current
}

// Update merges update over the stored record, revalidates and writes it.
// A changed NIM is checked against every other student inside the same transaction.
func (s *studentServiceImpl) Update(ctx context.Context, id int64, update models.StudentUpdate) (dto.OperationResult, error) {
	err := s.repos.WithTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		current, err := tx.Students.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, MsgStudentNotFound)
			}
			return err
		}

		merged := merge(current.Student, update)
		if err := s.validate(&merged); err != nil {
			return err
		}
		normalizeOptional(&merged)

		if merged.NIM != current.NIM {
			exists, err := tx.Students.NIMExists(ctx, merged.NIM, id)
			if err != nil {
				return err
			}
			if exists {
				return apperrors.NewConflictError(apperrors.ErrStudentIDAlreadyExists, fmt.Sprintf(msgNIMUsed, merged.NIM))
			}
		}

		changed, err := tx.Students.Update(ctx, id, &merged)
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicateNIM) {
				return apperrors.NewConflictError(apperrors.ErrStudentIDAlreadyExists, fmt.Sprintf(msgNIMUsed, merged.NIM))
			}
			return err
		}
		if !changed {
			return apperrors.NewCustomError(apperrors.ErrNothingChanged, MsgStudentNotUpdated)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("studentID", id).Msg("Student update rejected")
		return failure(storageError(err))
	}

	s.logger.Info().Int64("studentID", id).Msg("Student updated")
	return dto.NewSuccessResult(MsgStudentUpdated, id), nil
}

// Detail joins a student with its grades and GPA. A missing student yields nil, nil.
func (s *studentServiceImpl) Detail(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repos.Students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, storageError(err)
	}

	grades, err := s.repos.Grades.ListByStudent(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}

	gpa, err := s.repos.Grades.StudentGPA(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}

	return &models.StudentDetail{
		StudentWithStats: *student,
		Grades:           grades,
		GPA:              grading.Round2(gpa.GPA),
		TotalCredits:     gpa.TotalCredits,
		CompletedCourses: gpa.TotalCourses,
	}, nil
}

// Summary aggregates over every student
func (s *studentServiceImpl) Summary(ctx context.Context) (*models.AcademicSummary, error) {
	students, err := s.repos.Students.List(ctx, models.StudentFilter{})
	if err != nil {
		return nil, storageError(err)
	}

	stats, err := s.repos.Majors.Statistics(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	summary := &models.AcademicSummary{
		TotalStudents:   len(students),
		MajorStatistics: stats,
	}

	var sum float64
	for _, st := range students {
		if st.CourseCount > 0 {
			summary.StudentsWithGrades++
			sum += st.AvgGrade
		}
	}
	if summary.StudentsWithGrades > 0 {
		summary.AverageGPA = grading.Round2(sum / float64(summary.StudentsWithGrades))
	}

	return summary, nil
}

// Delete removes a student; the store cascades the grades
func (s *studentServiceImpl) Delete(ctx context.Context, id int64) (dto.OperationResult, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return failure(err)
	}

	deleted, err := s.repos.Students.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", id).Msg("Failed to delete student")
		return failure(storageError(err))
	}
	if !deleted {
		return failure(apperrors.NewCustomError(apperrors.ErrNothingChanged, MsgStudentNotDeleted))
	}

	s.logger.Info().Int64("studentID", id).Str("nim", student.NIM).Msg("Student deleted")
	return dto.NewSuccessResult(fmt.Sprintf(msgStudentDeleted, student.Name), id), nil
}
