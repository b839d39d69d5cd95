package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicateEnrollment reports that the student already holds an active
// enrollment in the course.
var ErrDuplicateEnrollment = errors.New("active enrollment already exists")

const (
	pqUniqueViolation         = pq.ErrorCode("23505")
	activeEnrollmentPairIndex = "uq_enrollments_active_pair"
)

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraint
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
