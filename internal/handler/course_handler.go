package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-api/internal/models"
	"github.com/noah-isme/course-api/pkg/export"
	"github.com/noah-isme/course-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context, params models.PageParams, filter models.CourseFilter) (models.Page[models.Course], error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, in models.CourseInput) (*models.Course, error)
	Update(ctx context.Context, id int64, in models.CourseInput) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

type rosterExporter interface {
	Export(ctx context.Context, courseID int64, format string) (*export.Document, error)
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	courses courseService
	roster  rosterExporter
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses courseService, roster rosterExporter) *CourseHandler {
	return &CourseHandler{courses: courses, roster: roster}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param search query string false "Search by title or description"
// @Param teacher_id query int false "Filter by teacher"
// @Param title query string false "Exact title"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	params, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var filter models.CourseFilter
	if err := bindFilter(c, &filter); err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.courses.List(c.Request.Context(), params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Get godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body models.CourseInput true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req models.CourseInput
	if err := bindBody(c, &req, "invalid course payload"); err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body models.CourseInput true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.CourseInput
	if err := bindBody(c, &req, "invalid course payload"); err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course)
}

// Delete godoc
// @Summary Delete course
// @Tags Courses
// @Param id path int true "Course ID"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportRoster godoc
// @Summary Download course roster
// @Tags Courses
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Course ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /courses/{id}/roster/export [get]
func (h *CourseHandler) ExportRoster(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	doc, err := h.roster.Export(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Body)
}
