// Package business contains business logic for the notification domain
package business

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/MovieFlow/config"
	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
	catalogerrors "github.com/Conte777/MovieFlow/internal/domain/catalog/errors"
	"github.com/Conte777/MovieFlow/internal/domain/notification/deps"
	"github.com/Conte777/MovieFlow/internal/domain/notification/dto"
	notiferrors "github.com/Conte777/MovieFlow/internal/domain/notification/errors"
	"github.com/Conte777/MovieFlow/internal/infrastructure/metrics"
)

// ReleasesPerRun is the number of new releases announced per run
const ReleasesPerRun = 3

const announcementHeader = "🎬 Новые фильмы:\n\n"

// UseCase runs the new-release broadcast
type UseCase struct {
	releases   deps.ReleaseSource
	recipients deps.RecipientRepository
	sender     deps.MessageSender
	cfg        *config.NotificationsConfig
	tmdbCfg    *config.TMDBConfig
	metrics    *metrics.Metrics
	logger     zerolog.Logger

	running atomic.Bool
}

// NewUseCase creates a new UseCase instance
// Note: sender is not passed here to break cyclic dependency
// Use SetSender after creating TelegramHandlers
func NewUseCase(
	releases deps.ReleaseSource,
	recipients deps.RecipientRepository,
	cfg *config.NotificationsConfig,
	tmdbCfg *config.TMDBConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		releases:   releases,
		recipients: recipients,
		cfg:        cfg,
		tmdbCfg:    tmdbCfg,
		metrics:    m,
		logger:     logger.With().Str("component", "broadcast").Logger(),
	}
}

// SetSender sets the MessageSender after construction
// This is called by fx.Invoke to resolve cyclic dependency
func (u *UseCase) SetSender(sender deps.MessageSender) {
	u.sender = sender
}

// Running reports whether a run is in progress
func (u *UseCase) Running() bool {
	return u.running.Load()
}

// Run executes one broadcast. Recipient failures are collected in the report and never fail the run;
// only a catalog failure does.
func (u *UseCase) Run(ctx context.Context) (*dto.RunReport, error) {
	if !u.running.CompareAndSwap(false, true) {
		return nil, notiferrors.ErrRunInProgress
	}
	defer u.running.Store(false)

	if u.sender == nil {
		return nil, notiferrors.ErrSenderNotReady
	}

	report := &dto.RunReport{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	logger := u.logger.With().Str("run_id", report.RunID).Logger()
	logger.Info().Msg("Starting new-release broadcast")

	items, err := u.newReleases(ctx)
	if err != nil {
		report.FinishedAt = time.Now()
		u.metrics.RecordBroadcastRun(false, 0, 0, report.FinishedAt.Sub(report.StartedAt).Seconds())
		logger.Error().Err(err).Msg("Broadcast aborted: catalog unavailable")
		return nil, err
	}

	report.Items = len(items)
	if len(items) == 0 {
		report.FinishedAt = time.Now()
		u.metrics.RecordBroadcastRun(true, 0, 0, report.FinishedAt.Sub(report.StartedAt).Seconds())
		logger.Info().Msg("No new releases, nothing to send")
		return report, nil
	}

	recipients, err := u.recipients.ListRecipients(ctx)
	if err != nil {
		report.FinishedAt = time.Now()
		u.metrics.RecordBroadcastRun(false, 0, 0, report.FinishedAt.Sub(report.StartedAt).Seconds())
		logger.Error().Err(err).Msg("Broadcast aborted: failed to load recipients")
		return nil, err
	}
	report.Recipients = len(recipients)

	body := FormatAnnouncement(items)
	report.Deliveries = u.deliver(ctx, logger, recipients, body)

	for _, d := range report.Deliveries {
		if d.OK() {
			report.Sent++
		} else {
			report.Failed++
		}
	}

	report.FinishedAt = time.Now()
	u.metrics.RecordBroadcastRun(true, report.Sent, report.Failed, report.FinishedAt.Sub(report.StartedAt).Seconds())

	logger.Info().
		Int("items", report.Items).
		Int("recipients", report.Recipients).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("Broadcast completed")

	return report, nil
}

// deliver fans out to recipients with bounded concurrency and an independent timeout per delivery
func (u *UseCase) deliver(ctx context.Context, logger zerolog.Logger, recipients []int64, body string) []dto.DeliveryResult {
	results := make([]dto.DeliveryResult, len(recipients))

	limit := u.cfg.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, chatID := range recipients {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, chatID int64) {
			defer wg.Done()
			defer func() { <-sem }()

			results[idx] = dto.DeliveryResult{ChatID: chatID}

			sendCtx, cancel := context.WithTimeout(ctx, u.cfg.DeliveryTimeout)
			defer cancel()

			if err := u.sendSafe(sendCtx, chatID, body); err != nil {
				results[idx].Error = err.Error()
				logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to deliver broadcast")
			}
		}(i, chatID)
	}

	wg.Wait()
	return results
}

// sendSafe turns a panicking sender into a delivery failure
func (u *UseCase) sendSafe(ctx context.Context, chatID int64, body string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sender panic: %v", r)
		}
	}()
	return u.sender.SendHTML(ctx, chatID, body)
}

func (u *UseCase) newReleases(ctx context.Context) ([]entities.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, u.tmdbCfg.Timeout)
	defer cancel()

	page, err := u.releases.QueryNewReleases(ctx, 1)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrCatalogUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", catalogerrors.ErrCatalogUnavailable, err)
	}

	return page.Take(ReleasesPerRun), nil
}

// FormatAnnouncement builds the single combined broadcast body
func FormatAnnouncement(items []entities.Movie) string {
	blocks := make([]string, len(items))
	for i, m := range items {
		blocks[i] = m.Announcement()
	}
	return announcementHeader + strings.Join(blocks, "\n\n")
}
