package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

const internalErrorMessage = "Internal Server Error"

// respondError maps the error taxonomy onto status codes. Anything not
// recognised is logged and reported as a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		verrs    apperrors.ValidationErrors
		verr     apperrors.ValidationError
		notFound apperrors.NotFoundError
		conflict apperrors.ConflictError
	)

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": withLocation(verrs)})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": withLocation(apperrors.ValidationErrors{verr})})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"msg": conflict.Message})
	case errors.Is(err, apperrors.ErrInvalidFileFormat), errors.Is(err, apperrors.ErrSchemaValidation):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		h.log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": internalErrorMessage})
	}
}

func withLocation(errs apperrors.ValidationErrors) apperrors.ValidationErrors {
	out := make(apperrors.ValidationErrors, len(errs))
	for i, e := range errs {
		if e.Location == "" {
			e.Location = "body"
		}
		out[i] = e
	}
	return out
}

// bindRequest decodes the JSON body into req and runs its field checks.
// It writes the 400 response itself and reports whether the handler should
// continue.
func (h *Handler) bindRequest(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": apperrors.ValidationErrors{{
			Message:  "Invalid request body",
			Location: "body",
		}}})
		return false
	}
	if err := model.CheckRequest(req); err != nil {
		h.respondError(c, err)
		return false
	}
	return true
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}
