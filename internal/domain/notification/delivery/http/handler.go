// Package http contains the notification admin HTTP handlers
package http

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/MovieFlow/config"
	"github.com/Conte777/MovieFlow/internal/domain/notification/dto"
	pkgerrors "github.com/Conte777/MovieFlow/pkg/errors"
	"github.com/Conte777/MovieFlow/pkg/httputil"
)

// Runner runs one broadcast
type Runner interface {
	Run(ctx context.Context) (*dto.RunReport, error)
}

// Handler handles broadcast admin requests
type Handler struct {
	runner Runner
	cfg    *config.NotificationsConfig
	mapper *pkgerrors.Mapper
	logger zerolog.Logger
}

// NewHandler creates a new broadcast handler
func NewHandler(runner Runner, cfg *config.NotificationsConfig, logger zerolog.Logger) *Handler {
	logger = logger.With().Str("component", "broadcast-http").Logger()

	return &Handler{
		runner: runner,
		cfg:    cfg,
		mapper: pkgerrors.NewMapper(logger),
		logger: logger,
	}
}

// Broadcast runs one broadcast synchronously and returns its report
func (h *Handler) Broadcast(ctx *fasthttp.RequestCtx) {
	runCtx := context.Background()
	if h.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, h.cfg.RunTimeout)
		defer cancel()
	}

	report, err := h.runner.Run(runCtx)
	if err != nil {
		status, msg := h.mapper.MapErrorToHTTP(err)
		h.logger.Warn().Err(err).Int("status", status).Msg("Manual broadcast failed")
		httputil.WriteErrorResponse(ctx, msg, status)
		return
	}

	h.logger.Info().
		Str("run_id", report.RunID).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Msg("Manual broadcast completed")

	httputil.WriteResponse(ctx, report)
}
