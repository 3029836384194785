package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models/dto"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/repositories"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/apperrors"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/grading"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/validation"
)

// Grade service messages
const (
	MsgCourseNotFound      = "Course not found"
	msgGradeAdded          = "Grade successfully added: %s"
	msgGradeExists         = "Grade already recorded for this course, semester and academic year"
	msgInvalidSemester     = "Semester must be a positive number"
	msgInvalidGrade        = "Invalid grade data"
)

// GradeInput is one grade to record
type GradeInput struct {
	StudentID    int64
	CourseID     int64
	Semester     int
	AcademicYear string
	GradeValue   float64
}

// GradeService defines grade recording and grade aggregation
type GradeService interface {
	LetterFor(value float64) string
	AddGrade(ctx context.Context, in GradeInput) (dto.AddGradeResponse, error)
	AcademicRecord(ctx context.Context, studentID int64) (*models.AcademicRecord, error)
	CourseStatistics(ctx context.Context, courseID int64) (*models.CourseStatistics, error)
}

// gradeServiceImpl implements GradeService
type gradeServiceImpl struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
}

// NewGradeService creates a new grade service
func NewGradeService(repos *repositories.Repositories, logger zerolog.Logger) GradeService {
	return &gradeServiceImpl{
		repos:  repos,
		logger: logger,
	}
}

// LetterFor derives the letter grade of value
func (s *gradeServiceImpl) LetterFor(value float64) string {
	return grading.Letter(value)
}

func gradeFailure(err error) (dto.AddGradeResponse, error) {
	return dto.AddGradeResponse{OperationResult: dto.NewFailureResult(err)}, err
}

// AddGrade checks the value range first, then derives the letter and stores the grade
func (s *gradeServiceImpl) AddGrade(ctx context.Context, in GradeInput) (dto.AddGradeResponse, error) {
	if r := validation.ValidateGrade(in.GradeValue); !r.Valid {
		return gradeFailure(apperrors.NewCustomError(apperrors.ErrGradeOutOfRange, r.Message))
	}
	if in.Semester < 1 {
		return gradeFailure(apperrors.NewValidationError(msgInvalidSemester))
	}

	academicYear := grading.NormalizeAcademicYear(in.AcademicYear)
	if err := validation.ValidateAcademicYear(academicYear).Err(); err != nil {
		return gradeFailure(err)
	}

	// grade_value is NUMERIC(3,2); the letter must match the stored value
	value := grading.Round2(in.GradeValue)
	letter := grading.Letter(value)
	grade := &models.Grade{
		StudentID:    in.StudentID,
		CourseID:     in.CourseID,
		Semester:     in.Semester,
		AcademicYear: academicYear,
		GradeValue:   value,
		GradeLetter:  letter,
	}

	id, err := s.repos.Grades.Create(ctx, grade)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateGrade):
			err = apperrors.NewConflictError(apperrors.ErrGradeAlreadyExists, msgGradeExists)
		case errors.Is(err, repositories.ErrStudentReference):
			err = apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, MsgStudentNotFound)
		case errors.Is(err, repositories.ErrCourseReference):
			err = apperrors.NewNotFoundError(apperrors.ErrCourseNotFound, MsgCourseNotFound)
		case errors.Is(err, repositories.ErrGradeConstraint):
			err = apperrors.NewValidationError(msgInvalidGrade)
		default:
			s.logger.Error().Err(err).
				Int64("studentID", in.StudentID).
				Int64("courseID", in.CourseID).
				Msg("Failed to add grade")
			err = apperrors.NewStorageError(err)
		}
		return gradeFailure(err)
	}

	s.logger.Info().
		Int64("gradeID", id).
		Int64("studentID", in.StudentID).
		Str("letter", letter).
		Msg("Grade recorded")

	return dto.AddGradeResponse{
		OperationResult: dto.NewSuccessResult(fmt.Sprintf(msgGradeAdded, letter), id),
		Letter:          letter,
	}, nil
}

type semesterKey struct {
	semester     int
	academicYear string
}

// groupBySemester folds grade rows into one record per (semester, academic year),
// sorted by academic year then semester.
func groupBySemester(grades []models.GradeWithCourse) []models.SemesterRecord {
	index := make(map[semesterKey]int)
	groups := make([]models.SemesterRecord, 0)

	for _, g := range grades {
		key := semesterKey{semester: g.Semester, academicYear: g.AcademicYear}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.SemesterRecord{
				Semester:     g.Semester,
				AcademicYear: g.AcademicYear,
				Courses:      make([]models.GradeWithCourse, 0),
			})
		}

		groups[i].Courses = append(groups[i].Courses, g)
		groups[i].TotalCredits += g.Credits
		groups[i].WeightedSum += g.GradeValue * float64(g.Credits)
	}

	for i := range groups {
		groups[i].GPA = grading.Divide(groups[i].WeightedSum, groups[i].TotalCredits)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].AcademicYear != groups[b].AcademicYear {
			return groups[a].AcademicYear < groups[b].AcademicYear
		}
		return groups[a].Semester < groups[b].Semester
	})

	return groups
}

// AcademicRecord builds a student's transcript grouped by semester
func (s *gradeServiceImpl) AcademicRecord(ctx context.Context, studentID int64) (*models.AcademicRecord, error) {
	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, MsgStudentNotFound)
		}
		return nil, storageError(err)
	}

	grades, err := s.repos.Grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, storageError(err)
	}

	gpa, err := s.repos.Grades.StudentGPA(ctx, studentID)
	if err != nil {
		return nil, storageError(err)
	}

	overall := grading.Round2(gpa.GPA)
	return &models.AcademicRecord{
		Student:      student,
		Semesters:    groupBySemester(grades),
		OverallGPA:   overall,
		TotalCredits: gpa.TotalCredits,
		TotalCourses: gpa.TotalCourses,
		Standing:     grading.Standing(overall),
	}, nil
}

// CourseStatistics summarises every grade of a course. A course without grades
// yields zero counts and an empty distribution.
func (s *gradeServiceImpl) CourseStatistics(ctx context.Context, courseID int64) (*models.CourseStatistics, error) {
	course, err := s.repos.Courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrCourseNotFound, MsgCourseNotFound)
		}
		return nil, storageError(err)
	}

	rows, err := s.repos.Grades.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, storageError(err)
	}

	stats := &models.CourseStatistics{
		Course:            course,
		GradeDistribution: make(map[string]int),
		Grades:            rows,
	}
	if len(rows) == 0 {
		return stats, nil
	}

	var sum float64
	for _, row := range rows {
		sum += row.GradeValue
		stats.GradeDistribution[row.GradeLetter]++
	}
	stats.TotalStudents = len(rows)
	stats.AverageGrade = grading.Round2(sum / float64(len(rows)))

	return stats, nil
}
