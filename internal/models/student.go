package models

import "time"

// Student owns zero or more enrollments.
type Student struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     *string    `db:"email" json:"email"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// StudentInput carries every mutable student field.
type StudentInput struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
}

// StudentFilter narrows student listings. CourseID keeps only students holding an
// active enrollment in that course.
type StudentFilter struct {
	CourseID *int64 `form:"course_id" validate:"omitempty,min=1"`
}
