package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-api/internal/models"
)

const studentColumns = "s.id, s.name, s.email, s.created_at, s.updated_at, s.deleted_at"

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns a page of active students, searching by name and email.
// filter.CourseID restricts the page to students actively enrolled in that course.
func (r *StudentRepository) List(ctx context.Context, params models.PageParams, filter models.StudentFilter) (PageResult[models.Student], error) {
	q := listQuery{
		from:         "students s",
		columns:      studentColumns,
		orderBy:      "s.id",
		searchFields: []string{"s.name", "s.email"},
		conditions:   []string{"s.deleted_at IS NULL"},
	}
	if filter.CourseID != nil {
		q.where("EXISTS (SELECT 1 FROM enrollments e WHERE e.student_id = s.id AND e.course_id = $%d AND e.deleted_at IS NULL)", *filter.CourseID)
	}
	result, err := paginate[models.Student](ctx, r.db, q, params)
	if err != nil {
		return result, fmt.Errorf("list students: %w", err)
	}
	return result, nil
}

// FindByID fetches an active student. It returns nil when none exists.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	const query = `SELECT ` + studentColumns + ` FROM students s WHERE s.id = $1 AND s.deleted_at IS NULL`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	const query = `INSERT INTO students AS s (name, email, created_at, updated_at) VALUES ($1, $2, $3, $3)
        RETURNING ` + studentColumns
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, in.Name, in.Email, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return &student, nil
}

// Update replaces the mutable fields of an active student. It returns nil when
// no active row matches.
func (r *StudentRepository) Update(ctx context.Context, id int64, in models.StudentInput) (*models.Student, error) {
	const query = `UPDATE students AS s SET name = $2, email = $3, updated_at = $4
        WHERE s.id = $1 AND s.deleted_at IS NULL
        RETURNING ` + studentColumns
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id, in.Name, in.Email, time.Now().UTC()); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return &student, nil
}

// SoftDelete marks an active student deleted and reports whether a row changed.
func (r *StudentRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE students SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	return softDelete(ctx, r.db, "student", query, id)
}
