// Package http contains service-wide HTTP handlers
package http

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/MovieFlow/pkg/httputil"
)

const healthCheckTimeout = 5 * time.Second

// DatabasePinger checks database connectivity
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// CatalogHealthChecker reports whether the catalog client accepts requests
type CatalogHealthChecker interface {
	Healthy() bool
}

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthHandler handles HTTP health check requests
type HealthHandler struct {
	db      DatabasePinger
	catalog CatalogHealthChecker
	logger  zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(db DatabasePinger, catalog CatalogHealthChecker, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		catalog: catalog,
		logger:  logger,
	}
}

// Handle handles the health check request for fasthttp.
// The database is required; an open catalog circuit only degrades the service.
func (h *HealthHandler) Handle(ctx *fasthttp.RequestCtx) {
	checkCtx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	components := h.checkComponents(checkCtx)
	status := determineOverallStatus(components)

	response := HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}

	statusCode := fasthttp.StatusOK
	if status == HealthStatusUnhealthy {
		statusCode = fasthttp.StatusServiceUnavailable
	}

	logEvent := h.logger.Debug()
	if status == HealthStatusUnhealthy {
		logEvent = h.logger.Warn()
	} else if status == HealthStatusDegraded {
		logEvent = h.logger.Info()
	}
	logEvent.
		Str("status", string(status)).
		Int("status_code", statusCode).
		Interface("components", components).
		Msg("Health check completed")

	httputil.WriteJSON(ctx, response, statusCode)
}

func (h *HealthHandler) checkComponents(ctx context.Context) []ComponentHealth {
	components := make([]ComponentHealth, 0, 2)

	db := ComponentHealth{Name: "database", Healthy: true}
	if err := h.db.PingContext(ctx); err != nil {
		db.Healthy = false
		db.Message = err.Error()
	}
	components = append(components, db)

	catalog := ComponentHealth{Name: "catalog", Healthy: h.catalog.Healthy()}
	if !catalog.Healthy {
		catalog.Message = "circuit breaker is open"
	}
	components = append(components, catalog)

	return components
}

// determineOverallStatus: database down is fatal, anything else degrades
func determineOverallStatus(components []ComponentHealth) HealthStatus {
	status := HealthStatusHealthy

	for _, component := range components {
		if component.Healthy {
			continue
		}
		if component.Name == "database" {
			return HealthStatusUnhealthy
		}
		status = HealthStatusDegraded
	}

	return status
}
