package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"school-admin-api/internal/config"
	"school-admin-api/internal/logger"
	"school-admin-api/internal/model"
	"school-admin-api/internal/service"
	"school-admin-api/internal/storage"
)

// ImportQueue accepts grade spreadsheets for background processing.
type ImportQueue interface {
	EnqueueImportJob(ctx context.Context, job model.GradeImportJob) error
}

type Handler struct {
	admin   *service.Admin
	storage storage.Storage
	imports ImportQueue
	checks  map[string]func(context.Context) error
	cfg     *config.Config
	log     zerolog.Logger
}

// NewHandler wires the HTTP layer. files and imports may be nil, in which
// case the upload routes answer 503.
func NewHandler(
	admin *service.Admin,
	files storage.Storage,
	imports ImportQueue,
	cfg *config.Config,
) *Handler {
	return &Handler{
		admin:   admin,
		storage: files,
		imports: imports,
		checks:  map[string]func(context.Context) error{},
		cfg:     cfg,
		log:     logger.Component("api"),
	}
}

// AddHealthCheck registers a dependency checked by GET /health.
func (h *Handler) AddHealthCheck(name string, check func(context.Context) error) {
	h.checks[name] = check
}

func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	deps := gin.H{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("Health check failed")
			deps[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"status":       state,
		"service":      h.cfg.App.Name,
		"version":      h.cfg.App.Version,
		"dependencies": deps,
	})
}
