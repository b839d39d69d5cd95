package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-api/internal/models"
	appErrors "github.com/noah-isme/course-api/pkg/errors"
)

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}

// pageParams binds page, size and search over their defaults.
func pageParams(c *gin.Context) (models.PageParams, error) {
	params := models.NewPageParams()
	if err := c.ShouldBindQuery(&params); err != nil {
		return params, appErrors.Validation(err, "invalid pagination parameters")
	}
	return params, nil
}

func bindFilter(c *gin.Context, filter interface{}) error {
	if err := c.ShouldBindQuery(filter); err != nil {
		return appErrors.Validation(err, "invalid filter parameters")
	}
	return nil
}

func bindBody(c *gin.Context, dst interface{}, message string) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return appErrors.Validation(err, message)
	}
	return nil
}
