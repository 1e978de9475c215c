package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"task-tracker/internal/middleware"
	"task-tracker/internal/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const indexTemplateName = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(
	template.New("").Funcs(template.FuncMap{
		"stamp": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 MST") },
	}).ParseFS(templateFS, "templates/*.html"),
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	CORSMaxAge     time.Duration
	Metrics        *monitoring.Metrics
	Health         *monitoring.HealthChecker
	MetricsExtra   map[string]func() map[string]interface{}
}

// NewRouter builds the dispatcher once at startup; the returned engine is
// shared by every request.
func NewRouter(taskHandler *TaskHandler, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	health := cfg.Health
	if health == nil {
		health = monitoring.NewHealthChecker(0)
	}

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.HandleMethodNotAllowed = false

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.RecoveryWithLog(logger),
		metrics.Middleware(),
	)
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost},
			AllowHeaders:  []string{"Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        cfg.CORSMaxAge,
		}))
	}

	router.SetHTMLTemplate(indexTemplate)

	router.GET("/", taskHandler.Index)
	router.GET("/tasks", taskHandler.GetTasks)
	router.POST("/tasks", taskHandler.CreateTask)
	router.POST("/tasks/:id/complete", taskHandler.CompleteTask)

	router.GET("/healthz", health.Handler(metrics.StartTime))
	router.GET("/metrics", metrics.Handler(cfg.MetricsExtra))

	router.NoRoute(notFound)

	return router
}
