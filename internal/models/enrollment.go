package models

import "time"

// Enrollment joins a student to a course. At most one active (not soft-deleted)
// enrollment exists per student/course pair.
type Enrollment struct {
	ID        int64      `db:"id" json:"id"`
	StudentID int64      `db:"student_id" json:"student_id"`
	CourseID  int64      `db:"course_id" json:"course_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// EnrollmentInput identifies a student/course pair.
type EnrollmentInput struct {
	StudentID int64 `json:"student_id" validate:"required,min=1"`
	CourseID  int64 `json:"course_id" validate:"required,min=1"`
}

// EnrollmentFilter narrows enrollment listings.
type EnrollmentFilter struct {
	StudentID *int64 `form:"student_id" validate:"omitempty,min=1"`
	CourseID  *int64 `form:"course_id" validate:"omitempty,min=1"`
}
