package models

import "time"

// Teacher owns zero or more courses.
type Teacher struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// TeacherInput carries every mutable teacher field.
type TeacherInput struct {
	Name string `json:"name" validate:"required,max=255"`
}
