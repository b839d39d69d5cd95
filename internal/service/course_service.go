package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-api/internal/models"
	"github.com/noah-isme/course-api/internal/repository"
	appErrors "github.com/noah-isme/course-api/pkg/errors"
	"github.com/noah-isme/course-api/pkg/logger"
	"github.com/noah-isme/course-api/pkg/validation"
)

type courseRepository interface {
	List(ctx context.Context, params models.PageParams, filter models.CourseFilter) (repository.PageResult[models.Course], error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, in models.CourseInput) (*models.Course, error)
	Update(ctx context.Context, id int64, in models.CourseInput) (*models.Course, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}

type teacherGetter interface {
	Get(ctx context.Context, id int64) (*models.Teacher, error)
}

// CourseService coordinates course operations. Every course must reference an
// active teacher.
type CourseService struct {
	repo      courseRepository
	teachers  teacherGetter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, teachers teacherGetter, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, teachers: teachers, validator: validate, logger: logger}
}

// List returns a page of courses.
func (s *CourseService) List(ctx context.Context, params models.PageParams, filter models.CourseFilter) (models.Page[models.Course], error) {
	if err := validatePage(s.validator, params, filter); err != nil {
		return models.Page[models.Course]{}, err
	}
	res, err := s.repo.List(ctx, params, filter)
	if err != nil {
		return models.Page[models.Course]{}, unexpected(ctx, s.logger, err, "listing courses")
	}
	return toPage(res, params), nil
}

// Get returns an active course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "fetching the course")
	}
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}

// Create adds a course for an existing teacher.
func (s *CourseService) Create(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	in = normalizeCourse(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, validation.Error(err, "invalid course payload")
	}
	if _, err := s.teachers.Get(ctx, in.TeacherID); err != nil {
		return nil, err
	}
	course, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "creating the course")
	}
	logger.WithContext(ctx, s.logger).Info("course created",
		zap.Int64("course_id", course.ID), zap.Int64("teacher_id", course.TeacherID))
	return course, nil
}

// Update replaces the course's fields, re-checking the referenced teacher.
func (s *CourseService) Update(ctx context.Context, id int64, in models.CourseInput) (*models.Course, error) {
	in = normalizeCourse(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, validation.Error(err, "invalid course payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.teachers.Get(ctx, in.TeacherID); err != nil {
		return nil, err
	}
	course, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "updating the course")
	}
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}

// Delete soft-deletes the course.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return unexpected(ctx, s.logger, err, "deleting the course")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	logger.WithContext(ctx, s.logger).Info("course deleted", zap.Int64("course_id", id))
	return nil
}

func normalizeCourse(in models.CourseInput) models.CourseInput {
	in.Title = strings.TrimSpace(in.Title)
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		in.Description = &desc
	}
	return in
}
