package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
	"github.com/abroadly/abroadly/internal/pkg/logger"
)

// HandleAPIError maps service and repository errors onto HTTP responses.
// Every controller funnels failures through here so the error body shape and
// the status mapping stay uniform across the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrPasswordMismatch):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Passwords don't match")
	case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Username already exists")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrAlreadyFavorited):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Program already favorited")
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOf(err, "Bad request"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		// Login failures are client-correctable input, and a 400 keeps
		// "no such user" indistinguishable from "wrong password".
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrNotAuthenticated), errors.Is(err, apperrors.ErrIdentityNotFound), errors.Is(err, apperrors.ErrSessionNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Not authenticated")

	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOf(err, "Permission denied"))

	case errors.Is(err, apperrors.ErrProgramNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Program not found")
	case errors.Is(err, apperrors.ErrFavoriteNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Favorite not found")
	case errors.Is(err, apperrors.ErrStudentNotFound), errors.Is(err, apperrors.ErrAlumniNotFound), errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleBindingError maps a request binding failure onto a 400 response with
// field-level detail where the validator provides it.
func HandleBindingError(c *gin.Context, err error) {
	detail := dto.HandleValidationError(err)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOf prefers a wrapped CustomError's message over the generic
// fallback, so handlers can attach request-specific wording.
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
