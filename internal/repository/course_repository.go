package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-api/internal/models"
)

const courseColumns = `c.id, c.title, c.description, c.teacher_id, c.created_at, c.updated_at, c.deleted_at,
        t.id AS "teacher.id", t.name AS "teacher.name"`

// CourseRepository manages persistence for courses. Rows are returned with
// their teacher summary joined in.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns a page of active courses, searching by title and description.
func (r *CourseRepository) List(ctx context.Context, params models.PageParams, filter models.CourseFilter) (PageResult[models.Course], error) {
	q := listQuery{
		from:         "courses c JOIN teachers t ON t.id = c.teacher_id",
		columns:      courseColumns,
		orderBy:      "c.id",
		searchFields: []string{"c.title", "c.description"},
		conditions:   []string{"c.deleted_at IS NULL"},
	}
	if filter.TeacherID != nil {
		q.where("c.teacher_id = $%d", *filter.TeacherID)
	}
	if filter.Title != "" {
		q.where("c.title = $%d", filter.Title)
	}
	result, err := paginate[models.Course](ctx, r.db, q, params)
	if err != nil {
		return result, fmt.Errorf("list courses: %w", err)
	}
	return result, nil
}

// FindByID fetches an active course. It returns nil when none exists.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const query = `SELECT ` + courseColumns + `
        FROM courses c JOIN teachers t ON t.id = c.teacher_id
        WHERE c.id = $1 AND c.deleted_at IS NULL`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

// Create inserts a new course record.
func (r *CourseRepository) Create(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	const query = `WITH c AS (
            INSERT INTO courses (title, description, teacher_id, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $4)
            RETURNING id, title, description, teacher_id, created_at, updated_at, deleted_at
        )
        SELECT ` + courseColumns + ` FROM c JOIN teachers t ON t.id = c.teacher_id`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, in.Title, in.Description, in.TeacherID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return &course, nil
}

// Update replaces the mutable fields of an active course. It returns nil when
// no active row matches.
func (r *CourseRepository) Update(ctx context.Context, id int64, in models.CourseInput) (*models.Course, error) {
	const query = `WITH c AS (
            UPDATE courses SET title = $2, description = $3, teacher_id = $4, updated_at = $5
            WHERE id = $1 AND deleted_at IS NULL
            RETURNING id, title, description, teacher_id, created_at, updated_at, deleted_at
        )
        SELECT ` + courseColumns + ` FROM c JOIN teachers t ON t.id = c.teacher_id`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id, in.Title, in.Description, in.TeacherID, time.Now().UTC()); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return &course, nil
}

// SoftDelete marks an active course deleted and reports whether a row changed.
func (r *CourseRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE courses SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	return softDelete(ctx, r.db, "course", query, id)
}
