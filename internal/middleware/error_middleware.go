package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursenotes/internal/app/models/dto"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
	"github.com/yigit/coursenotes/internal/pkg/logger"
)

// HandleAPIError maps application errors onto status codes and the error envelope
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("requestID", c.GetString(RequestIDKey)).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	var customErr *apperrors.CustomError
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
	}
	withMessage := func(fallback string) string {
		if message != "" {
			return message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrDuplicateUser):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Username already exists").WithField("username")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, withMessage("Resource already exists"))
	case errors.Is(err, apperrors.ErrAuthenticationFailure):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid username or password")
	case apperrors.Is(err, apperrors.ErrSessionNotFound, apperrors.ErrSessionExpired, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrNoteNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Note not found")
	case errors.Is(err, apperrors.ErrFileNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Note file not found")
	case apperrors.IsNotFound(err):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, withMessage("Resource not found"))
	case errors.Is(err, apperrors.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, dto.NewErrorDetail(dto.ErrorCodePayloadTooLarge, withMessage("Upload exceeds the size limit"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, withMessage("Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, withMessage("Bad request"))
	case errors.Is(err, apperrors.ErrStorageFailure):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeStorageError, "File storage failure")
	case errors.Is(err, apperrors.ErrConnectionFailure):
		return http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeStoreUnavailable, "Record store unavailable, try again later").
			WithSeverity(dto.ErrorSeverityCritical)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
