package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/middleware"
)

func respondError(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, domain.NewAPIError(code, message, details, c.GetString(middleware.CorrelationIDKey)))
}

// statusFor maps a service error onto an HTTP status and error code.
func statusFor(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, domain.ErrCodeValidation
	case errors.Is(err, domain.ErrUnknownSession):
		return http.StatusNotFound, domain.ErrCodeUnknownSession
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrCodeNotFound
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, domain.ErrCodeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, domain.ErrCodeUnavailable
	default:
		return http.StatusInternalServerError, domain.ErrCodeStorage
	}
}

func (s *Server) fail(c *gin.Context, err error, message string) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).WithField("correlation_id", c.GetString(middleware.CorrelationIDKey)).Error(message)
	}
	_ = c.Error(err)
	respondError(c, status, code, message, err.Error())
}
