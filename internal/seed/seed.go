package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/repositories"
)

// DefaultMajors are the four programmes every installation starts with
var DefaultMajors = []models.Major{
	{Code: "TI", Name: "Informatics Engineering", Faculty: "Faculty of Information Technology"},
	{Code: "SI", Name: "Information Systems", Faculty: "Faculty of Information Technology"},
	{Code: "MI", Name: "Informatics Management", Faculty: "Faculty of Information Technology"},
	{Code: "TK", Name: "Computer Engineering", Faculty: "Faculty of Engineering"},
}

// DefaultCourses are the sample courses seeded alongside the majors
var DefaultCourses = []models.Course{
	{Code: "TI101", Name: "Basic Programming", Credits: 3, Semester: 1, MajorCode: "TI"},
	{Code: "TI102", Name: "Discrete Mathematics", Credits: 3, Semester: 1, MajorCode: "TI"},
	{Code: "TI103", Name: "Introduction to Information Technology", Credits: 2, Semester: 1, MajorCode: "TI"},
	{Code: "TI201", Name: "Data Structures", Credits: 3, Semester: 2, MajorCode: "TI"},
	{Code: "TI202", Name: "Algorithms and Programming", Credits: 3, Semester: 2, MajorCode: "TI"},
	{Code: "TI203", Name: "Database Systems", Credits: 3, Semester: 2, MajorCode: "TI"},
	{Code: "SI101", Name: "Information Systems Fundamentals", Credits: 3, Semester: 1, MajorCode: "SI"},
	{Code: "SI102", Name: "Business Introduction", Credits: 2, Semester: 1, MajorCode: "SI"},
	{Code: "SI103", Name: "Economic Mathematics", Credits: 3, Semester: 1, MajorCode: "SI"},
}

// Result counts the rows inserted by a seed run
type Result struct {
	MajorsInserted  int
	CoursesInserted int
}

// CreateDefaultData inserts the default majors and courses, skipping any that
// already exist. Errors are collected so one bad row does not stop the rest.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) (Result, error) {
	var result Result
	var finalErr error

	lgr.Info().Msg("Checking/Creating default data (Majors/Courses)...")

	for i := range DefaultMajors {
		major := DefaultMajors[i]
		inserted, err := repos.Majors.Ensure(ctx, &major)
		if err != nil {
			lgr.Error().Err(err).Str("code", major.Code).Msg("Error creating major")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if inserted {
			result.MajorsInserted++
		}
	}

	for i := range DefaultCourses {
		course := DefaultCourses[i]
		inserted, err := repos.Courses.Ensure(ctx, &course)
		if err != nil {
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if inserted {
			result.CoursesInserted++
		}
	}

	lgr.Info().
		Int("majors", result.MajorsInserted).
		Int("courses", result.CoursesInserted).
		Msg("Default data check/creation finished")

	return result, finalErr
}
