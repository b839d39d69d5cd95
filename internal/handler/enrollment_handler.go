package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-api/internal/models"
	"github.com/noah-isme/course-api/pkg/response"
)

type enrollmentService interface {
	List(ctx context.Context, params models.PageParams, filter models.EnrollmentFilter) (models.Page[models.Enrollment], error)
	Get(ctx context.Context, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, in models.EnrollmentInput) (*models.Enrollment, error)
	Update(ctx context.Context, id int64, in models.EnrollmentInput) (*models.Enrollment, error)
	Delete(ctx context.Context, in models.EnrollmentInput) error
}

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler builds handler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param student_id query int false "Filter by student"
// @Param course_id query int false "Filter by course"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	params, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var filter models.EnrollmentFilter
	if err := bindFilter(c, &filter); err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.enrollments.List(c.Request.Context(), params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Get godoc
// @Summary Get enrollment
// @Tags Enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollment, err := h.enrollments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollment)
}

// Create godoc
// @Summary Enroll student into course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body models.EnrollmentInput true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Already enrolled"
// @Failure 404 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req models.EnrollmentInput
	if err := bindBody(c, &req, "invalid enrollment payload"); err != nil {
		response.Error(c, err)
		return
	}
	enrollment, err := h.enrollments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Update godoc
// @Summary Move enrollment to another student/course pair
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param payload body models.EnrollmentInput true "Enrollment payload"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [put]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.EnrollmentInput
	if err := bindBody(c, &req, "invalid enrollment payload"); err != nil {
		response.Error(c, err)
		return
	}
	enrollment, err := h.enrollments.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollment)
}

// Delete godoc
// @Summary Unenroll student from course
// @Tags Enrollments
// @Accept json
// @Param payload body models.EnrollmentInput true "Student and course"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /enrollments [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	var req models.EnrollmentInput
	if err := bindBody(c, &req, "invalid enrollment payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.enrollments.Delete(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
