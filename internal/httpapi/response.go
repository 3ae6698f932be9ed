package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/course"
	"github.com/abhisek/lingua/internal/session"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// respondServiceError maps course errors onto HTTP status codes.
func respondServiceError(c *gin.Context, err error) {
	var (
		genErr   *content.GenerationError
		stateErr *session.StateError
	)
	switch {
	case errors.Is(err, catalog.ErrLessonNotFound):
		respondError(c, http.StatusNotFound, "lesson_not_found", err)
	case errors.Is(err, course.ErrLessonLocked):
		respondError(c, http.StatusForbidden, "lesson_locked", err)
	case errors.Is(err, course.ErrSkipNotAllowed):
		respondError(c, http.StatusForbidden, "skip_not_allowed", err)
	case errors.Is(err, course.ErrNoSession):
		respondError(c, http.StatusConflict, "no_session", err)
	case errors.As(err, &stateErr):
		respondError(c, http.StatusConflict, "invalid_state", err)
	case errors.As(err, &genErr):
		status := http.StatusBadGateway
		if genErr.Cause == content.CauseNetwork {
			status = http.StatusServiceUnavailable
		}
		respondError(c, status, "generation_"+genErr.Cause.String(), err)
	default:
		respondError(c, http.StatusInternalServerError, "internal", err)
	}
}
