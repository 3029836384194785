package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/repositories"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
)

// CatalogService exposes the major and course reference data
type CatalogService interface {
	ListMajors(ctx context.Context) ([]models.Major, error)
	ListCourses(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	CoursesForStudent(ctx context.Context, studentID int64) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	GetCourseByCode(ctx context.Context, code string) (*models.Course, error)
}

type catalogServiceImpl struct {
	repos *repositories.Repositories
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos *repositories.Repositories) CatalogService {
	return &catalogServiceImpl{repos: repos}
}

func (s *catalogServiceImpl) ListMajors(ctx context.Context) ([]models.Major, error) {
	majors, err := s.repos.Majors.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return majors, nil
}

func (s *catalogServiceImpl) ListCourses(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	filter.MajorCode = strings.ToUpper(strings.TrimSpace(filter.MajorCode))

	courses, err := s.repos.Courses.List(ctx, filter)
	if err != nil {
		return nil, storageError(err)
	}
	return courses, nil
}

// CoursesForStudent lists the courses of the student's major, resolved by major name
func (s *catalogServiceImpl) CoursesForStudent(ctx context.Context, studentID int64) ([]models.Course, error) {
	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, MsgStudentNotFound)
		}
		return nil, storageError(err)
	}

	major, err := s.repos.Majors.GetByName(ctx, student.Major)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []models.Course{}, nil
		}
		return nil, storageError(err)
	}

	return s.ListCourses(ctx, models.CourseFilter{MajorCode: major.Code})
}

func (s *catalogServiceImpl) course(fetch func() (*models.Course, error)) (*models.Course, error) {
	course, err := fetch()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrCourseNotFound, MsgCourseNotFound)
		}
		return nil, storageError(err)
	}
	return course, nil
}

func (s *catalogServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.course(func() (*models.Course, error) { return s.repos.Courses.GetByID(ctx, id) })
}

func (s *catalogServiceImpl) GetCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return s.course(func() (*models.Course, error) { return s.repos.Courses.GetByCode(ctx, code) })
}
