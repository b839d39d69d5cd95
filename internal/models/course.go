package models

import "time"

// TeacherRef is the teacher summary embedded in course payloads.
type TeacherRef struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Course belongs to a teacher and owns enrollments.
type Course struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	TeacherID   int64      `db:"teacher_id" json:"teacher_id"`
	Teacher     TeacherRef `db:"teacher" json:"teacher"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-"`
}

// CourseInput carries every mutable course field.
type CourseInput struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	TeacherID   int64   `json:"teacher_id" validate:"required,min=1"`
}

// CourseFilter narrows course listings.
type CourseFilter struct {
	TeacherID *int64 `form:"teacher_id" validate:"omitempty,min=1"`
	Title     string `form:"title"`
}
