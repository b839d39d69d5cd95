package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-api/internal/models"
	"github.com/noah-isme/course-api/internal/repository"
	appErrors "github.com/noah-isme/course-api/pkg/errors"
	"github.com/noah-isme/course-api/pkg/logger"
	"github.com/noah-isme/course-api/pkg/validation"
)

const alreadyEnrolledMessage = "student already enrolled in this course"

type enrollmentRepository interface {
	List(ctx context.Context, params models.PageParams, filter models.EnrollmentFilter) (repository.PageResult[models.Enrollment], error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	FindActiveByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error)
	Update(ctx context.Context, id int64, in models.EnrollmentInput) (*models.Enrollment, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}

type studentGetter interface {
	Get(ctx context.Context, id int64) (*models.Student, error)
}

type courseGetter interface {
	Get(ctx context.Context, id int64) (*models.Course, error)
}

type enrollmentRecorder interface {
	RecordEnrollmentCreated()
}

// EnrollmentService manages student enrollments into courses. A student holds
// at most one active enrollment per course; a deleted enrollment stays deleted
// and re-enrolling creates a new row.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  studentGetter
	courses   courseGetter
	metrics   enrollmentRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the service. metrics may be nil.
func NewEnrollmentService(repo enrollmentRepository, students studentGetter, courses courseGetter, metrics enrollmentRecorder, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:      repo,
		students:  students,
		courses:   courses,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// List returns a page of active enrollments.
func (s *EnrollmentService) List(ctx context.Context, params models.PageParams, filter models.EnrollmentFilter) (models.Page[models.Enrollment], error) {
	if err := validatePage(s.validator, params, filter); err != nil {
		return models.Page[models.Enrollment]{}, err
	}
	res, err := s.repo.List(ctx, params, filter)
	if err != nil {
		return models.Page[models.Enrollment]{}, unexpected(ctx, s.logger, err, "listing enrollments")
	}
	return toPage(res, params), nil
}

// Get returns an active enrollment by id.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "fetching the enrollment")
	}
	if enrollment == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return enrollment, nil
}

// Create enrolls a student into a course.
func (s *EnrollmentService) Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, validation.Error(err, "invalid enrollment payload")
	}
	if err := s.ensureEnrollable(ctx, in, 0); err != nil {
		return nil, err
	}

	enrollment, err := s.repo.Create(ctx, in)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEnrollment) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, alreadyEnrolledMessage)
		}
		return nil, unexpected(ctx, s.logger, err, "creating the enrollment")
	}
	if s.metrics != nil {
		s.metrics.RecordEnrollmentCreated()
	}
	logger.WithContext(ctx, s.logger).Info("student enrolled",
		zap.Int64("enrollment_id", enrollment.ID),
		zap.Int64("student_id", in.StudentID),
		zap.Int64("course_id", in.CourseID))
	return enrollment, nil
}

// Update moves an active enrollment to another student/course pair.
func (s *EnrollmentService) Update(ctx context.Context, id int64, in models.EnrollmentInput) (*models.Enrollment, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, validation.Error(err, "invalid enrollment payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.ensureEnrollable(ctx, in, id); err != nil {
		return nil, err
	}

	enrollment, err := s.repo.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEnrollment) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, alreadyEnrolledMessage)
		}
		return nil, unexpected(ctx, s.logger, err, "updating the enrollment")
	}
	if enrollment == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return enrollment, nil
}

// Delete withdraws the student's active enrollment from the course.
func (s *EnrollmentService) Delete(ctx context.Context, in models.EnrollmentInput) error {
	if err := s.validator.Struct(in); err != nil {
		return validation.Error(err, "invalid enrollment payload")
	}
	enrollment, err := s.repo.FindActiveByStudentAndCourse(ctx, in.StudentID, in.CourseID)
	if err != nil {
		return unexpected(ctx, s.logger, err, "deleting the enrollment")
	}
	if enrollment == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	deleted, err := s.repo.SoftDelete(ctx, enrollment.ID)
	if err != nil {
		return unexpected(ctx, s.logger, err, "deleting the enrollment")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	logger.WithContext(ctx, s.logger).Info("student unenrolled",
		zap.Int64("enrollment_id", enrollment.ID),
		zap.Int64("student_id", in.StudentID),
		zap.Int64("course_id", in.CourseID))
	return nil
}

// ensureEnrollable checks both ends of the pair exist and that no other active
// enrollment holds it. selfID excludes the enrollment being updated.
func (s *EnrollmentService) ensureEnrollable(ctx context.Context, in models.EnrollmentInput, selfID int64) error {
	if _, err := s.students.Get(ctx, in.StudentID); err != nil {
		return err
	}
	if _, err := s.courses.Get(ctx, in.CourseID); err != nil {
		return err
	}
	existing, err := s.repo.FindActiveByStudentAndCourse(ctx, in.StudentID, in.CourseID)
	if err != nil {
		return unexpected(ctx, s.logger, err, "checking existing enrollments")
	}
	if existing != nil && existing.ID != selfID {
		return appErrors.Clone(appErrors.ErrConflict, alreadyEnrolledMessage)
	}
	return nil
}
