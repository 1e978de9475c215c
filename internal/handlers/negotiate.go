package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"task-tracker/internal/apperror"
	"task-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MediaKind int

const (
	MediaUnknown MediaKind = iota
	MediaJSON
	MediaForm
)

func (k MediaKind) String() string {
	switch k {
	case MediaJSON:
		return "json"
	case MediaForm:
		return "form"
	default:
		return "unknown"
	}
}

var formPrefixes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// ClassifyContentType matches the raw Content-Type header by case-sensitive prefix.
func ClassifyContentType(header string) MediaKind {
	if strings.HasPrefix(header, binding.MIMEJSON) {
		return MediaJSON
	}
	for _, prefix := range formPrefixes {
		if strings.HasPrefix(header, prefix) {
			return MediaForm
		}
	}
	return MediaUnknown
}

// decodeTaskInput rejects non-JSON bodies before reading them. A failure to read
// the body itself aborts the connection instead of producing a response.
func (h *TaskHandler) decodeTaskInput(c *gin.Context) (models.TaskInput, error) {
	var input models.TaskInput

	switch ClassifyContentType(c.GetHeader("Content-Type")) {
	case MediaJSON:
	case MediaForm:
		return input, apperror.UnsupportedContentType("form bodies are not supported")
	default:
		return input, apperror.UnsupportedContentType("unknown media type")
	}

	body := c.Request.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return input, apperror.Decode(err)
		}
		h.logger.Warn("aborting request: body read failed",
			"error", err,
			"request_id", requestID(c),
		)
		panic(http.ErrAbortHandler)
	}

	if err := binding.JSON.BindBody(data, &input); err != nil {
		return input, apperror.Decode(err)
	}
	return input, nil
}
