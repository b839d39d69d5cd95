package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-api/internal/models"
	appErrors "github.com/noah-isme/course-api/pkg/errors"
)

func TestRosterExportCSVPagesThroughStudents(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	require.NoError(t, f.students.Delete(ctx, f.student.ID))
	for i := 0; i < 105; i++ {
		student, err := f.students.Create(ctx, models.StudentInput{Name: fmt.Sprintf("Student %03d", i)})
		require.NoError(t, err)
		_, err = f.enrollments.Create(ctx, models.EnrollmentInput{StudentID: student.ID, CourseID: f.course.ID})
		require.NoError(t, err)
	}

	doc, err := f.roster.Export(ctx, f.course.ID, "CSV")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("course-%d-roster.csv", f.course.ID), doc.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", doc.ContentType)

	lines := strings.Split(strings.TrimSpace(string(doc.Body)), "\n")
	require.Len(t, lines, 106)
	assert.Equal(t, "id,name,email", lines[0])
	assert.True(t, strings.HasSuffix(lines[105], ",Student 104,"))
}

func TestRosterExportPDF(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()
	_, err := f.enrollments.Create(ctx, models.EnrollmentInput{StudentID: f.student.ID, CourseID: f.course.ID})
	require.NoError(t, err)

	doc, err := f.roster.Export(ctx, f.course.ID, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, strings.HasPrefix(string(doc.Body), "%PDF"))
}

func TestRosterExportErrors(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	_, err := f.roster.Export(ctx, f.course.ID, "xlsx")
	requireCode(t, err, appErrors.ErrValidation.Code)

	_, err = f.roster.Export(ctx, 999, "csv")
	requireCode(t, err, appErrors.ErrNotFound.Code)
}
