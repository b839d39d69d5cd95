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

type teacherRepository interface {
	List(ctx context.Context, params models.PageParams) (repository.PageResult[models.Teacher], error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, in models.TeacherInput) (*models.Teacher, error)
	Update(ctx context.Context, id int64, in models.TeacherInput) (*models.Teacher, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}

// TeacherService orchestrates teacher operations.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// List returns a page of teachers.
func (s *TeacherService) List(ctx context.Context, params models.PageParams) (models.Page[models.Teacher], error) {
	if err := validatePage(s.validator, params, nil); err != nil {
		return models.Page[models.Teacher]{}, err
	}
	res, err := s.repo.List(ctx, params)
	if err != nil {
		return models.Page[models.Teacher]{}, unexpected(ctx, s.logger, err, "listing teachers")
	}
	return toPage(res, params), nil
}

// Get returns an active teacher by id.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "fetching the teacher")
	}
	if teacher == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return teacher, nil
}

// Create registers a new teacher.
func (s *TeacherService) Create(ctx context.Context, in models.TeacherInput) (*models.Teacher, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Struct(in); err != nil {
		return nil, validation.Error(err, "invalid teacher payload")
	}
	teacher, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "creating the teacher")
	}
	logger.WithContext(ctx, s.logger).Info("teacher created", zap.Int64("teacher_id", teacher.ID))
	return teacher, nil
}

// Update replaces the teacher's fields.
func (s *TeacherService) Update(ctx context.Context, id int64, in models.TeacherInput) (*models.Teacher, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Struct(in); err != nil {
		return nil, validation.Error(err, "invalid teacher payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	teacher, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "updating the teacher")
	}
	if teacher == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return teacher, nil
}

// Delete soft-deletes the teacher.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return unexpected(ctx, s.logger, err, "deleting the teacher")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	logger.WithContext(ctx, s.logger).Info("teacher deleted", zap.Int64("teacher_id", id))
	return nil
}
