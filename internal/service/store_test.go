package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/course-api/internal/models"
	"github.com/noah-isme/course-api/internal/repository"
)

// memStore is an in-memory stand-in for the Postgres tables shared by the fake
// repositories below. Setting err makes every operation fail with it.
type memStore struct {
	nextID      int64
	teachers    map[int64]models.Teacher
	courses     map[int64]models.Course
	students    map[int64]models.Student
	enrollments map[int64]models.Enrollment
	err         error
}

func newMemStore() *memStore {
	return &memStore{
		teachers:    map[int64]models.Teacher{},
		courses:     map[int64]models.Course{},
		students:    map[int64]models.Student{},
		enrollments: map[int64]models.Enrollment{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func contains(search string, fields ...string) bool {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func pageOf[T any](items []T, id func(T) int64, params models.PageParams) repository.PageResult[T] {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
	total := len(items)
	pages := 1
	if params.Size > 0 {
		pages = (total + params.Size - 1) / params.Size
	}
	start := params.Offset()
	if start > total {
		start = total
	}
	end := total
	if total-start > params.Size {
		end = start + params.Size
	}
	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)
	return repository.PageResult[T]{Items: page, Total: total, Pages: pages, Page: params.Page}
}

type memTeacherRepo struct{ *memStore }

func (r memTeacherRepo) List(ctx context.Context, params models.PageParams) (repository.PageResult[models.Teacher], error) {
	if r.err != nil {
		return repository.PageResult[models.Teacher]{}, r.err
	}
	var items []models.Teacher
	for _, t := range r.teachers {
		if t.DeletedAt == nil && contains(params.Search, t.Name) {
			items = append(items, t)
		}
	}
	return pageOf(items, func(t models.Teacher) int64 { return t.ID }, params), nil
}

func (r memTeacherRepo) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.teachers[id]
	if !ok || t.DeletedAt != nil {
		return nil, nil
	}
	return &t, nil
}

func (r memTeacherRepo) Create(ctx context.Context, in models.TeacherInput) (*models.Teacher, error) {
	if r.err != nil {
		return nil, r.err
	}
	now := time.Now().UTC()
	t := models.Teacher{ID: r.id(), Name: in.Name, CreatedAt: now, UpdatedAt: now}
	r.teachers[t.ID] = t
	return &t, nil
}

func (r memTeacherRepo) Update(ctx context.Context, id int64, in models.TeacherInput) (*models.Teacher, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil || t == nil {
		return nil, err
	}
	t.Name = in.Name
	t.UpdatedAt = time.Now().UTC()
	r.teachers[id] = *t
	return t, nil
}

func (r memTeacherRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil || t == nil {
		return false, err
	}
	now := time.Now().UTC()
	t.DeletedAt = &now
	r.teachers[id] = *t
	return true, nil
}

type memCourseRepo struct{ *memStore }

func (r memCourseRepo) withTeacher(c models.Course) models.Course {
	t := r.teachers[c.TeacherID]
	c.Teacher = models.TeacherRef{ID: t.ID, Name: t.Name}
	return c
}

func (r memCourseRepo) List(ctx context.Context, params models.PageParams, filter models.CourseFilter) (repository.PageResult[models.Course], error) {
	if r.err != nil {
		return repository.PageResult[models.Course]{}, r.err
	}
	var items []models.Course
	for _, c := range r.courses {
		if c.DeletedAt != nil {
			continue
		}
		if filter.TeacherID != nil && c.TeacherID != *filter.TeacherID {
			continue
		}
		if filter.Title != "" && c.Title != filter.Title {
			continue
		}
		desc := ""
		if c.Description != nil {
			desc = *c.Description
		}
		if contains(params.Search, c.Title, desc) {
			items = append(items, r.withTeacher(c))
		}
	}
	return pageOf(items, func(c models.Course) int64 { return c.ID }, params), nil
}

func (r memCourseRepo) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.courses[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	c = r.withTeacher(c)
	return &c, nil
}

func (r memCourseRepo) Create(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	if r.err != nil {
		return nil, r.err
	}
	now := time.Now().UTC()
	c := models.Course{ID: r.id(), Title: in.Title, Description: in.Description, TeacherID: in.TeacherID, CreatedAt: now, UpdatedAt: now}
	r.courses[c.ID] = c
	c = r.withTeacher(c)
	return &c, nil
}

func (r memCourseRepo) Update(ctx context.Context, id int64, in models.CourseInput) (*models.Course, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	c.Title, c.Description, c.TeacherID = in.Title, in.Description, in.TeacherID
	c.UpdatedAt = time.Now().UTC()
	r.courses[id] = *c
	updated := r.withTeacher(*c)
	return &updated, nil
}

func (r memCourseRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil || c == nil {
		return false, err
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	r.courses[id] = *c
	return true, nil
}

type memStudentRepo struct{ *memStore }

func (r memStudentRepo) enrolled(studentID, courseID int64) bool {
	for _, e := range r.enrollments {
		if e.DeletedAt == nil && e.StudentID == studentID && e.CourseID == courseID {
			return true
		}
	}
	return false
}

func (r memStudentRepo) List(ctx context.Context, params models.PageParams, filter models.StudentFilter) (repository.PageResult[models.Student], error) {
	if r.err != nil {
		return repository.PageResult[models.Student]{}, r.err
	}
	var items []models.Student
	for _, s := range r.students {
		if s.DeletedAt != nil {
			continue
		}
		if filter.CourseID != nil && !r.enrolled(s.ID, *filter.CourseID) {
			continue
		}
		email := ""
		if s.Email != nil {
			email = *s.Email
		}
		if contains(params.Search, s.Name, email) {
			items = append(items, s)
		}
	}
	return pageOf(items, func(s models.Student) int64 { return s.ID }, params), nil
}

func (r memStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.students[id]
	if !ok || s.DeletedAt != nil {
		return nil, nil
	}
	return &s, nil
}

func (r memStudentRepo) Create(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	now := time.Now().UTC()
	s := models.Student{ID: r.id(), Name: in.Name, Email: in.Email, CreatedAt: now, UpdatedAt: now}
	r.students[s.ID] = s
	return &s, nil
}

func (r memStudentRepo) Update(ctx context.Context, id int64, in models.StudentInput) (*models.Student, error) {
	s, err := r.FindByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	s.Name, s.Email = in.Name, in.Email
	s.UpdatedAt = time.Now().UTC()
	r.students[id] = *s
	return s, nil
}

func (r memStudentRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	s, err := r.FindByID(ctx, id)
	if err != nil || s == nil {
		return false, err
	}
	now := time.Now().UTC()
	s.DeletedAt = &now
	r.students[id] = *s
	return true, nil
}

// memEnrollmentRepo enforces the active-pair uniqueness the partial index gives
// Postgres. skipLookup hides existing rows from FindActiveByStudentAndCourse to
// simulate a concurrent insert slipping past the pre-check.
type memEnrollmentRepo struct {
	*memStore
	skipLookup bool
}

func (r *memEnrollmentRepo) List(ctx context.Context, params models.PageParams, filter models.EnrollmentFilter) (repository.PageResult[models.Enrollment], error) {
	if r.err != nil {
		return repository.PageResult[models.Enrollment]{}, r.err
	}
	var items []models.Enrollment
	for _, e := range r.enrollments {
		if e.DeletedAt != nil {
			continue
		}
		if filter.StudentID != nil && e.StudentID != *filter.StudentID {
			continue
		}
		if filter.CourseID != nil && e.CourseID != *filter.CourseID {
			continue
		}
		items = append(items, e)
	}
	return pageOf(items, func(e models.Enrollment) int64 { return e.ID }, params), nil
}

func (r *memEnrollmentRepo) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.enrollments[id]
	if !ok || e.DeletedAt != nil {
		return nil, nil
	}
	return &e, nil
}

func (r *memEnrollmentRepo) active(studentID, courseID int64) *models.Enrollment {
	for _, e := range r.enrollments {
		if e.DeletedAt == nil && e.StudentID == studentID && e.CourseID == courseID {
			found := e
			return &found
		}
	}
	return nil
}

func (r *memEnrollmentRepo) FindActiveByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.skipLookup {
		return nil, nil
	}
	return r.active(studentID, courseID), nil
}

func (r *memEnrollmentRepo) Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.active(in.StudentID, in.CourseID) != nil {
		return nil, repository.ErrDuplicateEnrollment
	}
	now := time.Now().UTC()
	e := models.Enrollment{ID: r.id(), StudentID: in.StudentID, CourseID: in.CourseID, CreatedAt: now, UpdatedAt: now}
	r.enrollments[e.ID] = e
	return &e, nil
}

func (r *memEnrollmentRepo) Update(ctx context.Context, id int64, in models.EnrollmentInput) (*models.Enrollment, error) {
	e, err := r.FindByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	if other := r.active(in.StudentID, in.CourseID); other != nil && other.ID != id {
		return nil, repository.ErrDuplicateEnrollment
	}
	e.StudentID, e.CourseID = in.StudentID, in.CourseID
	e.UpdatedAt = time.Now().UTC()
	r.enrollments[id] = *e
	return e, nil
}

func (r *memEnrollmentRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	e, err := r.FindByID(ctx, id)
	if err != nil || e == nil {
		return false, err
	}
	now := time.Now().UTC()
	e.DeletedAt = &now
	r.enrollments[id] = *e
	return true, nil
}

type services struct {
	store       *memStore
	enrollRepo  *memEnrollmentRepo
	metrics     *MetricsService
	teachers    *TeacherService
	courses     *CourseService
	students    *StudentService
	enrollments *EnrollmentService
	roster      *RosterService
}

func newServices() *services {
	store := newMemStore()
	enrollRepo := &memEnrollmentRepo{memStore: store}
	metrics := NewMetricsService()
	teachers := NewTeacherService(memTeacherRepo{store}, nil, nil)
	courses := NewCourseService(memCourseRepo{store}, teachers, nil, nil)
	students := NewStudentService(memStudentRepo{store}, nil, nil)
	return &services{
		store:       store,
		enrollRepo:  enrollRepo,
		metrics:     metrics,
		teachers:    teachers,
		courses:     courses,
		students:    students,
		enrollments: NewEnrollmentService(enrollRepo, students, courses, metrics, nil, nil),
		roster:      NewRosterService(courses, students, nil),
	}
}
