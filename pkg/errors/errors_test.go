package errors

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	notFound := Clone(ErrNotFound, "teacher with id 7 not found")
	wrapped := fmt.Errorf("handler: %w", notFound)

	got := FromError(wrapped)
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "teacher with id 7 not found", got.Message)
}

func TestFromErrorHidesUntypedErrors(t *testing.T) {
	got := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, ErrInternal.Message, got.Message)
	assert.ErrorIs(t, got, sql.ErrConnDone)
}

func TestIsMatchesByCode(t *testing.T) {
	err := Clone(ErrConflict, "student already enrolled in this course")
	assert.True(t, stderrors.Is(err, ErrConflict))
	assert.False(t, stderrors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestInternalKeepsCauseOutOfMessage(t *testing.T) {
	cause := stderrors.New("pq: connection refused")
	err := Internal(cause, "unexpected error while creating the teacher")
	assert.Equal(t, "unexpected error while creating the teacher", err.Message)
	assert.ErrorIs(t, err, cause)
}
