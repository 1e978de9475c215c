package handlers

import (
	"errors"
	"net/http"

	"task-tracker/internal/apperror"
	"task-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// respondError is the only place failures become HTTP responses. Server-side
// failures are logged in full; clients only see a generic message.
func (h *TaskHandler) respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Store(err)
	}

	switch appErr.Kind {
	case apperror.KindInputDecode:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
	case apperror.KindUnsupportedContentType:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported content type"})
	case apperror.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": appErr.Fields,
		})
	case apperror.KindPathParam:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
	case apperror.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case apperror.KindAlreadyCompleted:
		c.JSON(http.StatusBadRequest, gin.H{"error": "task already completed"})
	default:
		h.logger.Error("request failed",
			"kind", appErr.Kind.String(),
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", requestID(c),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func requestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}
