package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/MovieFlow/config"
	"github.com/Conte777/MovieFlow/internal/domain/notification/dto"
	notiferrors "github.com/Conte777/MovieFlow/internal/domain/notification/errors"
)

// Broadcaster runs one broadcast
type Broadcaster interface {
	Run(ctx context.Context) (*dto.RunReport, error)
}

// BroadcastWorker periodically broadcasts new releases to subscribed users
type BroadcastWorker struct {
	broadcaster Broadcaster
	interval    time.Duration
	timeout     time.Duration
	logger      zerolog.Logger

	done   chan struct{}
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBroadcastWorker creates a new broadcast worker
func NewBroadcastWorker(
	broadcaster Broadcaster,
	cfg *config.NotificationsConfig,
	logger zerolog.Logger,
) *BroadcastWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &BroadcastWorker{
		broadcaster: broadcaster,
		interval:    cfg.Interval,
		timeout:     cfg.RunTimeout,
		logger:      logger.With().Str("component", "broadcast-worker").Logger(),
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the broadcast worker
func (w *BroadcastWorker) Start() {
	w.logger.Info().
		Dur("interval", w.interval).
		Dur("timeout", w.timeout).
		Msg("Starting broadcast worker")

	w.wg.Add(1)
	go w.run()
}

// Stop gracefully stops the broadcast worker, cancelling a run in flight
func (w *BroadcastWorker) Stop() {
	w.logger.Info().Msg("Stopping broadcast worker")

	w.cancel()
	close(w.done)
	w.wg.Wait()

	w.logger.Info().Msg("Broadcast worker stopped")
}

func (w *BroadcastWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.broadcast()
		}
	}
}

// broadcast performs a single run
func (w *BroadcastWorker) broadcast() {
	ctx := w.ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(w.ctx, w.timeout)
		defer cancel()
	}

	report, err := w.broadcaster.Run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, notiferrors.ErrRunInProgress):
			w.logger.Warn().Msg("Previous broadcast still running, skipping tick")
		case ctx.Err() != nil:
			w.logger.Warn().Err(err).Msg("Broadcast cancelled or timed out")
		default:
			w.logger.Error().Err(err).Msg("Broadcast failed")
		}
		return
	}

	w.logger.Debug().
		Str("run_id", report.RunID).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Msg("Broadcast cycle completed")
}
