package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-api/internal/models"
	"github.com/noah-isme/course-api/internal/repository"
	appErrors "github.com/noah-isme/course-api/pkg/errors"
	"github.com/noah-isme/course-api/pkg/logger"
	"github.com/noah-isme/course-api/pkg/validation"
)

func validatePage(v *validator.Validate, params models.PageParams, filter interface{}) error {
	if err := v.Struct(params); err != nil {
		return validation.Error(err, "invalid pagination parameters")
	}
	if filter != nil {
		if err := v.Struct(filter); err != nil {
			return validation.Error(err, "invalid filter parameters")
		}
	}
	return nil
}

func toPage[T any](res repository.PageResult[T], params models.PageParams) models.Page[T] {
	return models.NewPage(res.Items, res.Total, res.Pages, res.Page, params.Size)
}

// unexpected logs a store failure once and hides it behind a generic message.
func unexpected(ctx context.Context, l *zap.Logger, err error, action string) error {
	logger.WithContext(ctx, l).Error("store failure", zap.String("action", action), zap.Error(err))
	return appErrors.Internal(err, "unexpected error while "+action)
}
