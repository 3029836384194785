package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ArkanTsabit123/Student-Management-System/internal/app/models"
	"github.com/ArkanTsabit123/Student-Management-System/internal/app/repositories"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/grading"
	"github.com/ArkanTsabit123/Student-Management-System/internal/seed"
)

// memStore is the shared state behind the in-memory repositories. It mirrors
// the constraints the schema enforces: unique NIM, unique enrollment, foreign
// keys on grades and the delete cascade.
type memStore struct {
	students map[int64]*models.Student
	courses  map[int64]*models.Course
	majors   []models.Major
	grades   []models.Grade

	nextStudentID int64
	nextGradeID   int64
	nextCourseID  int64

	// err, when set, is returned by every repository call
	err error
}

func newMemStore() *memStore {
	m := &memStore{
		students: make(map[int64]*models.Student),
		courses:  make(map[int64]*models.Course),
	}
	for _, major := range seed.DefaultMajors {
		major.ID = int64(len(m.majors) + 1)
		m.majors = append(m.majors, major)
	}
	for _, course := range seed.DefaultCourses {
		c := course
		m.nextCourseID++
		c.ID = m.nextCourseID
		m.courses[c.ID] = &c
	}
	return m
}

// newTestRepos returns repositories over a fresh store seeded with the default catalog
func newTestRepos() (*repositories.Repositories, *memStore) {
	store := newMemStore()
	return &repositories.Repositories{
		Students: &mockStudentRepo{store},
		Grades:   &mockGradeRepo{store},
		Courses:  &mockCourseRepo{store},
		Majors:   &mockMajorRepo{store},
	}, store
}

func (m *memStore) courseByCode(code string) *models.Course {
	for _, c := range m.courses {
		if c.Code == code {
			return c
		}
	}
	return nil
}

func (m *memStore) withStats(s *models.Student) models.StudentWithStats {
	out := models.StudentWithStats{Student: *s}
	var sum float64
	for _, g := range m.grades {
		if g.StudentID == s.ID {
			out.CourseCount++
			sum += g.GradeValue
		}
	}
	if out.CourseCount > 0 {
		out.AvgGrade = sum / float64(out.CourseCount)
	}
	return out
}

// ── Mock StudentRepository ──

type mockStudentRepo struct{ *memStore }

func (m *mockStudentRepo) nimTaken(nim string, excludeID int64) bool {
	for id, s := range m.students {
		if s.NIM == nim && id != excludeID {
			return true
		}
	}
	return false
}

func (m *mockStudentRepo) Create(_ context.Context, student *models.Student) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.nimTaken(student.NIM, 0) {
		return 0, repositories.ErrDuplicateNIM
	}
	m.nextStudentID++
	stored := *student
	stored.ID = m.nextStudentID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.students[stored.ID] = &stored
	student.ID = stored.ID
	return stored.ID, nil
}

func (m *mockStudentRepo) Update(_ context.Context, id int64, student *models.Student) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	current, ok := m.students[id]
	if !ok {
		return false, nil
	}
	if m.nimTaken(student.NIM, id) {
		return false, repositories.ErrDuplicateNIM
	}
	updated := *student
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now()
	m.students[id] = &updated
	return true, nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.students[id]; !ok {
		return false, nil
	}
	delete(m.students, id)
	kept := m.grades[:0]
	for _, g := range m.grades {
		if g.StudentID != id {
			kept = append(kept, g)
		}
	}
	m.grades = kept
	return true, nil
}

func (m *mockStudentRepo) List(_ context.Context, filter models.StudentFilter) ([]models.StudentWithStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	term := strings.ToLower(filter.SearchTerm)
	result := make([]models.StudentWithStats, 0)
	for _, s := range m.students {
		if term != "" && !strings.Contains(strings.ToLower(s.NIM), term) && !strings.Contains(strings.ToLower(s.Name), term) {
			continue
		}
		if filter.Major != "" && s.Major != filter.Major {
			continue
		}
		if filter.Year > 0 && s.AdmissionYear != filter.Year {
			continue
		}
		result = append(result, m.withStats(s))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NIM < result[j].NIM })
	return result, nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int64) (*models.StudentWithStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := m.withStats(s)
	return &out, nil
}

func (m *mockStudentRepo) GetByNIM(_ context.Context, nim string) (*models.StudentWithStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.students {
		if s.NIM == nim {
			out := m.withStats(s)
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockStudentRepo) NIMExists(_ context.Context, nim string, excludeID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.nimTaken(nim, excludeID), nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct{ *memStore }

func (m *mockGradeRepo) Create(_ context.Context, grade *models.Grade) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.students[grade.StudentID]; !ok {
		return 0, repositories.ErrStudentReference
	}
	if _, ok := m.courses[grade.CourseID]; !ok {
		return 0, repositories.ErrCourseReference
	}
	for _, g := range m.grades {
		if g.StudentID == grade.StudentID && g.CourseID == grade.CourseID &&
			g.Semester == grade.Semester && g.AcademicYear == grade.AcademicYear {
			return 0, repositories.ErrDuplicateGrade
		}
	}
	m.nextGradeID++
	grade.ID = m.nextGradeID
	grade.CreatedAt = time.Now()
	m.grades = append(m.grades, *grade)
	return grade.ID, nil
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, studentID int64) ([]models.GradeWithCourse, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.GradeWithCourse, 0)
	for _, g := range m.grades {
		if g.StudentID != studentID {
			continue
		}
		c := m.courses[g.CourseID]
		result = append(result, models.GradeWithCourse{
			Grade:      g,
			CourseCode: c.Code,
			CourseName: c.Name,
			Credits:    c.Credits,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Semester != result[j].Semester {
			return result[i].Semester < result[j].Semester
		}
		if result[i].AcademicYear != result[j].AcademicYear {
			return result[i].AcademicYear < result[j].AcademicYear
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockGradeRepo) StudentGPA(_ context.Context, studentID int64) (*models.GPAAggregate, error) {
	if m.err != nil {
		return nil, m.err
	}
	agg := &models.GPAAggregate{}
	for _, g := range m.grades {
		if g.StudentID != studentID {
			continue
		}
		credits := m.courses[g.CourseID].Credits
		agg.TotalCourses++
		agg.TotalCredits += credits
		agg.WeightedSum += g.GradeValue * float64(credits)
	}
	agg.GPA = grading.Divide(agg.WeightedSum, agg.TotalCredits)
	return agg, nil
}

func (m *mockGradeRepo) ListByCourse(_ context.Context, courseID int64) ([]models.CourseGradeRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.CourseGradeRow, 0)
	for _, g := range m.grades {
		if g.CourseID != courseID {
			continue
		}
		s := m.students[g.StudentID]
		result = append(result, models.CourseGradeRow{Grade: g, StudentNIM: s.NIM, StudentName: s.Name})
	}
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct{ *memStore }

func (m *mockCourseRepo) List(_ context.Context, filter models.CourseFilter) ([]models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.Course, 0)
	for _, c := range m.courses {
		if filter.MajorCode != "" && c.MajorCode != filter.MajorCode {
			continue
		}
		if filter.Semester > 0 && c.Semester != filter.Semester {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Semester != result[j].Semester {
			return result[i].Semester < result[j].Semester
		}
		return result[i].Code < result[j].Code
	})
	return result, nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.courses[id]; ok {
		out := *c
		return &out, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c := m.courseByCode(code); c != nil {
		out := *c
		return &out, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockCourseRepo) Ensure(_ context.Context, course *models.Course) (bool, error) {
	if m.courseByCode(course.Code) != nil {
		return false, nil
	}
	m.nextCourseID++
	c := *course
	c.ID = m.nextCourseID
	m.courses[c.ID] = &c
	return true, nil
}

// ── Mock MajorRepository ──

type mockMajorRepo struct{ *memStore }

func (m *mockMajorRepo) List(_ context.Context) ([]models.Major, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := append([]models.Major(nil), m.majors...)
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockMajorRepo) GetByName(_ context.Context, name string) (*models.Major, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, major := range m.majors {
		if major.Name == name {
			out := major
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockMajorRepo) Statistics(_ context.Context) ([]models.MajorStatistics, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.MajorStatistics, 0, len(m.majors))
	for _, major := range m.majors {
		stat := models.MajorStatistics{Code: major.Code, Major: major.Name, Faculty: major.Faculty}
		var sum float64
		var n int
		for _, s := range m.students {
			if s.Major != major.Name {
				continue
			}
			stat.StudentCount++
			for _, g := range m.grades {
				if g.StudentID == s.ID {
					sum += g.GradeValue
					n++
				}
			}
		}
		if n > 0 {
			stat.AvgGrade = sum / float64(n)
		}
		result = append(result, stat)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockMajorRepo) Ensure(_ context.Context, major *models.Major) (bool, error) {
	for _, existing := range m.majors {
		if existing.Code == major.Code {
			return false, nil
		}
	}
	m.majors = append(m.majors, *major)
	return true, nil
}
