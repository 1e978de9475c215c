package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"task-tracker/internal/apperror"
	"task-tracker/internal/models"
	"task-tracker/internal/services"
	"task-tracker/internal/validation"

	"github.com/gin-gonic/gin"
)

var (
	taskIDPattern = regexp.MustCompile(`^[0-9]+$`)
	errNotDigits  = errors.New("id must be decimal digits")
)

type TaskHandler struct {
	taskService  services.TaskService
	logger       *slog.Logger
	maxBodyBytes int64
}

func NewTaskHandler(taskService services.TaskService, logger *slog.Logger, maxBodyBytes int64) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService:  taskService,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	input, err := h.decodeTaskInput(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	valid, err := validation.Validate(input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.taskService.CreateTask(c.Request.Context(), valid); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.listTasks(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	raw := c.Param("id")
	if raw == "" {
		// No id segment at all is an unknown route, not a malformed id.
		notFound(c)
		return
	}

	id, err := parseTaskID(raw)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.taskService.CompleteTask(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Index renders the HTML view over the same list GET /tasks returns.
func (h *TaskHandler) Index(c *gin.Context) {
	tasks, err := h.listTasks(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, indexTemplateName, gin.H{"Tasks": tasks})
}

func (h *TaskHandler) listTasks(c *gin.Context) ([]models.Task, error) {
	tasks, err := h.taskService.GetTasks(c.Request.Context())
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func parseTaskID(raw string) (int64, error) {
	if !taskIDPattern.MatchString(raw) {
		return 0, apperror.PathParam("id", raw, errNotDigits)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.PathParam("id", raw, err)
	}
	return id, nil
}
