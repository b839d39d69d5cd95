package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-api/internal/models"
)

const enrollmentColumns = "id, student_id, course_id, created_at, updated_at, deleted_at"

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns a page of active enrollments filtered by student and/or course.
func (r *EnrollmentRepository) List(ctx context.Context, params models.PageParams, filter models.EnrollmentFilter) (PageResult[models.Enrollment], error) {
	q := listQuery{
		from:       "enrollments",
		columns:    enrollmentColumns,
		orderBy:    "id",
		conditions: []string{"deleted_at IS NULL"},
	}
	if filter.StudentID != nil {
		q.where("student_id = $%d", *filter.StudentID)
	}
	if filter.CourseID != nil {
		q.where("course_id = $%d", *filter.CourseID)
	}
	result, err := paginate[models.Enrollment](ctx, r.db, q, params)
	if err != nil {
		return result, fmt.Errorf("list enrollments: %w", err)
	}
	return result, nil
}

// FindByID returns an active enrollment by its ID, or nil.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	const query = `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1 AND deleted_at IS NULL`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}

// FindActiveByStudentAndCourse returns the active enrollment for the pair, or nil.
func (r *EnrollmentRepository) FindActiveByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	const query = `SELECT ` + enrollmentColumns + ` FROM enrollments
        WHERE student_id = $1 AND course_id = $2 AND deleted_at IS NULL
        ORDER BY id LIMIT 1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentID, courseID); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active enrollment: %w", err)
	}
	return &enrollment, nil
}

// Create persists a new enrollment. A concurrent duplicate caught by the
// partial unique index surfaces as ErrDuplicateEnrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error) {
	const query = `INSERT INTO enrollments (student_id, course_id, created_at, updated_at) VALUES ($1, $2, $3, $3)
        RETURNING ` + enrollmentColumns
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, in.StudentID, in.CourseID, time.Now().UTC()); err != nil {
		if isUniqueViolation(err, activeEnrollmentPairIndex) {
			return nil, ErrDuplicateEnrollment
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return &enrollment, nil
}

// Update re-points an active enrollment at another pair. It returns nil when no
// active row matches.
func (r *EnrollmentRepository) Update(ctx context.Context, id int64, in models.EnrollmentInput) (*models.Enrollment, error) {
	const query = `UPDATE enrollments SET student_id = $2, course_id = $3, updated_at = $4
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING ` + enrollmentColumns
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id, in.StudentID, in.CourseID, time.Now().UTC()); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		if isUniqueViolation(err, activeEnrollmentPairIndex) {
			return nil, ErrDuplicateEnrollment
		}
		return nil, fmt.Errorf("update enrollment: %w", err)
	}
	return &enrollment, nil
}

// SoftDelete marks an active enrollment deleted and reports whether a row changed.
func (r *EnrollmentRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE enrollments SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	return softDelete(ctx, r.db, "enrollment", query, id)
}
