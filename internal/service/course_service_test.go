package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-api/internal/models"
	appErrors "github.com/noah-isme/course-api/pkg/errors"
)

func TestCourseServiceCreateRequiresTeacher(t *testing.T) {
	svcs := newServices()

	_, err := svcs.courses.Create(context.Background(), models.CourseInput{Title: "CS101", TeacherID: 999})
	appErr := requireCode(t, err, appErrors.ErrNotFound.Code)
	assert.Equal(t, "teacher not found", appErr.Message)
	assert.Empty(t, svcs.store.courses)
}

func TestCourseServiceCreateEmbedsTeacher(t *testing.T) {
	svcs := newServices()
	ctx := context.Background()
	teacher, err := svcs.teachers.Create(ctx, models.TeacherInput{Name: "Ada"})
	require.NoError(t, err)

	course, err := svcs.courses.Create(ctx, models.CourseInput{Title: "CS101", TeacherID: teacher.ID})
	require.NoError(t, err)
	assert.Equal(t, models.TeacherRef{ID: teacher.ID, Name: "Ada"}, course.Teacher)
	assert.Nil(t, course.Description)
}

func TestCourseServiceUpdateChecksNewTeacher(t *testing.T) {
	svcs := newServices()
	ctx := context.Background()
	teacher, err := svcs.teachers.Create(ctx, models.TeacherInput{Name: "Ada"})
	require.NoError(t, err)
	course, err := svcs.courses.Create(ctx, models.CourseInput{Title: "CS101", TeacherID: teacher.ID})
	require.NoError(t, err)

	_, err = svcs.courses.Update(ctx, course.ID, models.CourseInput{Title: "CS102", TeacherID: 555})
	requireCode(t, err, appErrors.ErrNotFound.Code)

	desc := "Intro"
	updated, err := svcs.courses.Update(ctx, course.ID, models.CourseInput{Title: "CS102", Description: &desc, TeacherID: teacher.ID})
	require.NoError(t, err)
	assert.Equal(t, "CS102", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Intro", *updated.Description)

	_, err = svcs.courses.Update(ctx, 4242, models.CourseInput{Title: "x", TeacherID: teacher.ID})
	appErr := requireCode(t, err, appErrors.ErrNotFound.Code)
	assert.Equal(t, "course not found", appErr.Message)
}

func TestCourseServiceListFilters(t *testing.T) {
	svcs := newServices()
	ctx := context.Background()
	ada, err := svcs.teachers.Create(ctx, models.TeacherInput{Name: "Ada"})
	require.NoError(t, err)
	alan, err := svcs.teachers.Create(ctx, models.TeacherInput{Name: "Alan"})
	require.NoError(t, err)
	desc := "Computability"
	for _, in := range []models.CourseInput{
		{Title: "CS101", TeacherID: ada.ID},
		{Title: "CS201", TeacherID: alan.ID, Description: &desc},
		{Title: "CS301", TeacherID: alan.ID},
	} {
		_, err := svcs.courses.Create(ctx, in)
		require.NoError(t, err)
	}

	page, err := svcs.courses.List(ctx, models.NewPageParams(), models.CourseFilter{TeacherID: &alan.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	params := models.NewPageParams()
	params.Search = "computab"
	page, err = svcs.courses.List(ctx, params, models.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "CS201", page.Items[0].Title)

	bad := int64(0)
	_, err = svcs.courses.List(ctx, models.NewPageParams(), models.CourseFilter{TeacherID: &bad})
	requireCode(t, err, appErrors.ErrValidation.Code)
}

func TestCourseServiceDelete(t *testing.T) {
	svcs := newServices()
	ctx := context.Background()
	teacher, err := svcs.teachers.Create(ctx, models.TeacherInput{Name: "Ada"})
	require.NoError(t, err)
	course, err := svcs.courses.Create(ctx, models.CourseInput{Title: "CS101", TeacherID: teacher.ID})
	require.NoError(t, err)

	require.NoError(t, svcs.courses.Delete(ctx, course.ID))
	requireCode(t, svcs.courses.Delete(ctx, course.ID), appErrors.ErrNotFound.Code)
}
