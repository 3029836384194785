package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/repositories"
)

type fakeMajors struct {
	repositories.MajorRepository
	codes map[string]bool
}

func (f *fakeMajors) Ensure(_ context.Context, m *models.Major) (bool, error) {
	if f.codes[m.Code] {
		return false, nil
	}
	f.codes[m.Code] = true
	return true, nil
}

type fakeCourses struct {
	repositories.CourseRepository
	codes map[string]bool
	fail  string
}

func (f *fakeCourses) Ensure(_ context.Context, c *models.Course) (bool, error) {
	if c.Code == f.fail {
		return false, errors.New("boom")
	}
	if f.codes[c.Code] {
		return false, nil
	}
	f.codes[c.Code] = true
	return true, nil
}

func TestCreateDefaultData_Idempotent(t *testing.T) {
	repos := &repositories.Repositories{
		Majors:  &fakeMajors{codes: map[string]bool{}},
		Courses: &fakeCourses{codes: map[string]bool{}},
	}

	first, err := CreateDefaultData(context.Background(), repos, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Result{MajorsInserted: 4, CoursesInserted: 9}, first)

	second, err := CreateDefaultData(context.Background(), repos, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)
}

func TestCreateDefaultData_ContinuesAfterError(t *testing.T) {
	repos := &repositories.Repositories{
		Majors:  &fakeMajors{codes: map[string]bool{}},
		Courses: &fakeCourses{codes: map[string]bool{}, fail: "TI102"},
	}

	result, err := CreateDefaultData(context.Background(), repos, zerolog.Nop())
	require.Error(t, err)
	assert.Equal(t, 8, result.CoursesInserted)
}

func TestDefaultCoursesBelongToDefaultMajors(t *testing.T) {
	codes := map[string]bool{}
	for _, m := range DefaultMajors {
		codes[m.Code] = true
	}
	for _, c := range DefaultCourses {
		assert.True(t, codes[c.MajorCode], c.Code)
		assert.Positive(t, c.Credits, c.Code)
	}
}
