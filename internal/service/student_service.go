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

type studentRepository interface {
	List(ctx context.Context, params models.PageParams, filter models.StudentFilter) (repository.PageResult[models.Student], error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, in models.StudentInput) (*models.Student, error)
	Update(ctx context.Context, id int64, in models.StudentInput) (*models.Student, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}

// StudentService handles student business logic.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns a page of students, optionally restricted to one course's roster.
func (s *StudentService) List(ctx context.Context, params models.PageParams, filter models.StudentFilter) (models.Page[models.Student], error) {
	if err := validatePage(s.validator, params, filter); err != nil {
		return models.Page[models.Student]{}, err
	}
	res, err := s.repo.List(ctx, params, filter)
	if err != nil {
		return models.Page[models.Student]{}, unexpected(ctx, s.logger, err, "listing students")
	}
	return toPage(res, params), nil
}

// Get returns an active student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "fetching the student")
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	in = normalizeStudent(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, validation.Error(err, "invalid student payload")
	}
	student, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "creating the student")
	}
	logger.WithContext(ctx, s.logger).Info("student created", zap.Int64("student_id", student.ID))
	return student, nil
}

// Update replaces the student's fields.
func (s *StudentService) Update(ctx context.Context, id int64, in models.StudentInput) (*models.Student, error) {
	in = normalizeStudent(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, validation.Error(err, "invalid student payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	student, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "updating the student")
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// Delete soft-deletes the student.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return unexpected(ctx, s.logger, err, "deleting the student")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	logger.WithContext(ctx, s.logger).Info("student deleted", zap.Int64("student_id", id))
	return nil
}

func normalizeStudent(in models.StudentInput) models.StudentInput {
	in.Name = strings.TrimSpace(in.Name)
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			in.Email = nil
		} else {
			in.Email = &email
		}
	}
	return in
}
