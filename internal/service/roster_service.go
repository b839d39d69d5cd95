package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/course-api/internal/models"
	"github.com/noah-isme/course-api/pkg/export"
	"github.com/noah-isme/course-api/pkg/logger"
	"github.com/noah-isme/course-api/pkg/validation"
)

const rosterPageSize = models.MaxPageSize

type studentLister interface {
	List(ctx context.Context, params models.PageParams, filter models.StudentFilter) (models.Page[models.Student], error)
}

// RosterService renders the students enrolled in a course as a downloadable file.
type RosterService struct {
	courses  courseGetter
	students studentLister
	logger   *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(courses courseGetter, students studentLister, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{courses: courses, students: students, logger: logger}
}

// Export builds the roster of course id in the requested format.
func (s *RosterService) Export(ctx context.Context, courseID int64, format string) (*export.Document, error) {
	parsed, err := export.ParseFormat(format)
	if err != nil {
		return nil, validation.Error(err, "unsupported export format")
	}
	renderer, err := export.RendererFor(parsed)
	if err != nil {
		return nil, validation.Error(err, "unsupported export format")
	}

	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Roster: %s", course.Title),
		Headers: []string{"id", "name", "email"},
	}
	params := models.PageParams{Page: 1, Size: rosterPageSize}
	filter := models.StudentFilter{CourseID: &course.ID}
	for {
		page, err := s.students.List(ctx, params, filter)
		if err != nil {
			return nil, err
		}
		for _, student := range page.Items {
			email := ""
			if student.Email != nil {
				email = *student.Email
			}
			dataset.Rows = append(dataset.Rows, []string{strconv.FormatInt(student.ID, 10), student.Name, email})
		}
		if params.Page >= page.Pages {
			break
		}
		params.Page++
	}

	body, err := renderer.Render(dataset)
	if err != nil {
		return nil, unexpected(ctx, s.logger, err, "rendering the roster")
	}
	logger.WithContext(ctx, s.logger).Info("roster exported",
		zap.Int64("course_id", course.ID),
		zap.String("format", string(parsed)),
		zap.Int("rows", len(dataset.Rows)))

	return &export.Document{
		Filename:    fmt.Sprintf("course-%d-roster.%s", course.ID, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}
