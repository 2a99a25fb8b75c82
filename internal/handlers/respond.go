package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/i18n"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
)

// statusFor maps a domain error kind to an HTTP status code.
func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.ErrKindValidation:
		return http.StatusBadRequest
	case models.ErrKindNotFound:
		return http.StatusNotFound
	case models.ErrKindConflict:
		return http.StatusConflict
	case models.ErrKindForbidden:
		return http.StatusForbidden
	case models.ErrKindState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders err as JSON. Domain errors get their catalog message
// in the caller's locale; anything else is a 500 with a generic body.
func respondError(c *gin.Context, catalog *i18n.Catalog, logger *logrus.Logger, err error) {
	var domainErr *models.DomainError
	if errors.As(err, &domainErr) {
		locale := c.GetHeader("Accept-Language")
		c.JSON(statusFor(domainErr.Kind), gin.H{
			"error":   string(domainErr.Kind),
			"code":    domainErr.Key,
			"message": catalog.Render(locale, domainErr.Key, domainErr.Args),
		})
		return
	}

	logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal",
		"message": "Internal server error",
	})
}

// respondBindError renders a request-shape failure from gin's binding.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation",
		"message": "invalid request: " + err.Error(),
	})
}
