package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-api/internal/models"
)

var courseRowColumns = []string{"id", "title", "description", "teacher_id", "created_at", "updated_at", "deleted_at", "teacher.id", "teacher.name"}

func TestCourseRepositoryListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)
	created, updated := timestamps()

	where := regexp.QuoteMeta("FROM courses c JOIN teachers t ON t.id = c.teacher_id WHERE c.deleted_at IS NULL AND c.teacher_id = $1 AND (LOWER(COALESCE(c.title, '')) LIKE $2 OR LOWER(COALESCE(c.description, '')) LIKE $2)")
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) " + where).
		WithArgs(int64(1), "%intro%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(where + regexp.QuoteMeta(" ORDER BY c.id ASC LIMIT 10 OFFSET 0")).
		WithArgs(int64(1), "%intro%").
		WillReturnRows(sqlmock.NewRows(courseRowColumns).AddRow(3, "CS101", "Intro", 1, created, updated, nil, 1, "Ada"))

	teacherID := int64(1)
	res, err := repo.List(context.Background(), models.PageParams{Page: 1, Size: 10, Search: "Intro"}, models.CourseFilter{TeacherID: &teacherID})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	course := res.Items[0]
	assert.Equal(t, "CS101", course.Title)
	assert.Equal(t, models.TeacherRef{ID: 1, Name: "Ada"}, course.Teacher)
	require.NotNil(t, course.Description)
	assert.Equal(t, "Intro", *course.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateReturnsTeacherSummary(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)
	created, updated := timestamps()

	mock.ExpectQuery("INSERT INTO courses").
		WithArgs("CS101", nil, int64(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(courseRowColumns).AddRow(1, "CS101", nil, 1, created, updated, nil, 1, "Ada"))

	course, err := repo.Create(context.Background(), models.CourseInput{Title: "CS101", TeacherID: 1})
	require.NoError(t, err)
	assert.Nil(t, course.Description)
	assert.Equal(t, "Ada", course.Teacher.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE courses SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(int64(4), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.SoftDelete(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
