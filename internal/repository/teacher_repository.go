package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-api/internal/models"
)

const teacherColumns = "id, name, created_at, updated_at, deleted_at"

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns a page of active teachers, searching by name.
func (r *TeacherRepository) List(ctx context.Context, params models.PageParams) (PageResult[models.Teacher], error) {
	q := listQuery{
		from:         "teachers",
		columns:      teacherColumns,
		orderBy:      "id",
		searchFields: []string{"name"},
		conditions:   []string{"deleted_at IS NULL"},
	}
	result, err := paginate[models.Teacher](ctx, r.db, q, params)
	if err != nil {
		return result, fmt.Errorf("list teachers: %w", err)
	}
	return result, nil
}

// FindByID fetches an active teacher. It returns nil when none exists.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	const query = `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1 AND deleted_at IS NULL`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	return &teacher, nil
}

// Create inserts a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, in models.TeacherInput) (*models.Teacher, error) {
	const query = `INSERT INTO teachers (name, created_at, updated_at) VALUES ($1, $2, $2)
		RETURNING ` + teacherColumns
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, in.Name, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}
	return &teacher, nil
}

// Update replaces the mutable fields of an active teacher. It returns nil when
// no active row matches.
func (r *TeacherRepository) Update(ctx context.Context, id int64, in models.TeacherInput) (*models.Teacher, error) {
	const query = `UPDATE teachers SET name = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + teacherColumns
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id, in.Name, time.Now().UTC()); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update teacher: %w", err)
	}
	return &teacher, nil
}

// SoftDelete marks an active teacher deleted and reports whether a row changed.
func (r *TeacherRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE teachers SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	return softDelete(ctx, r.db, "teacher", query, id)
}

func softDelete(ctx context.Context, db sqlx.ExecerContext, entity, query string, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", entity, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", entity, err)
	}
	return affected > 0, nil
}
