// Package business contains business logic for the movie browsing domain
package business

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Conte777/MovieFlow/config"
	catalogdeps "github.com/Conte777/MovieFlow/internal/domain/catalog/deps"
	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
	catalogerrors "github.com/Conte777/MovieFlow/internal/domain/catalog/errors"
	"github.com/Conte777/MovieFlow/internal/domain/movie/deps"
	"github.com/Conte777/MovieFlow/internal/domain/movie/dto"
	moverrors "github.com/Conte777/MovieFlow/internal/domain/movie/errors"
	"github.com/Conte777/MovieFlow/internal/infrastructure/metrics"
)

// UseCase drives category browsing, paging and keyword search for each chat
type UseCase struct {
	catalog catalogdeps.Client
	store   deps.SessionStore
	gate    deps.RateGate
	cfg     *config.TMDBConfig
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	catalog catalogdeps.Client,
	store deps.SessionStore,
	gate deps.RateGate,
	cfg *config.TMDBConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		catalog: catalog,
		store:   store,
		gate:    gate,
		cfg:     cfg,
		metrics: m,
		logger:  logger.With().Str("component", "movie-usecase").Logger(),
	}
}

// StartBrowsing resets the chat to the category keyboard
func (u *UseCase) StartBrowsing(ctx context.Context, chatID int64) {
	u.store.Reset(chatID)
	u.store.ClearSearch(chatID)

	u.logger.Debug().Int64("chat_id", chatID).Msg("browsing session reset")
}

// BeginSearch puts the chat into query prompt state
func (u *UseCase) BeginSearch(ctx context.Context, chatID int64) {
	u.store.ClearSearch(chatID)
	u.store.BeginSearch(chatID)
}

// AwaitingQuery reports whether the next text of the chat is a search query
func (u *UseCase) AwaitingQuery(chatID int64) bool {
	return u.store.AwaitingQuery(chatID)
}

// SelectCategory shows the first batch of a category.
// The session changes only after the catalog answered.
func (u *UseCase) SelectCategory(ctx context.Context, chatID int64, category entities.Category) (*dto.PresentationBatch, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", moverrors.ErrInvalidCategory, string(category))
	}

	page, err := u.queryCategory(ctx, category, 1)
	if err != nil {
		u.logger.Error().Err(err).
			Int64("chat_id", chatID).
			Str("category", string(category)).
			Msg("failed to query category")
		return nil, err
	}

	u.store.SetCategory(chatID, category)
	u.store.ClearSearch(chatID)

	return u.present(chatID, dto.PresentationBatch{
		Items:    page.Take(entities.DisplayCount),
		HasMore:  category.Paginated() && !page.Empty(),
		Source:   dto.SourceCategory,
		Category: category,
		Page:     1,
	}), nil
}

// ShowMore shows the next batch of the active category.
// The rate gate is checked before any state is read. A committed page ends any stored search.
func (u *UseCase) ShowMore(ctx context.Context, chatID, userID int64) (*dto.PresentationBatch, error) {
	if !u.gate.Allow(userID) {
		u.metrics.RecordRateLimited()
		u.logger.Debug().Int64("user_id", userID).Msg("show more rate limited")
		return nil, moverrors.ErrRateLimited
	}

	sess, ok := u.store.Get(chatID)
	if !ok || !sess.HasCategory() {
		return nil, moverrors.ErrNoActiveCategory
	}

	if !sess.Category.Paginated() {
		return nil, moverrors.ErrNoMoreResults
	}

	next := sess.Page + 1
	page, err := u.queryCategory(ctx, sess.Category, next)
	if err != nil {
		u.logger.Error().Err(err).
			Int64("chat_id", chatID).
			Str("category", string(sess.Category)).
			Int("page", next).
			Msg("failed to query next page")
		return nil, err
	}

	if page.Empty() {
		return nil, moverrors.ErrNoMoreResults
	}

	current := u.store.AdvancePage(chatID)
	u.store.ClearSearch(chatID)

	return u.present(chatID, dto.PresentationBatch{
		Items:    page.Take(entities.DisplayCount),
		HasMore:  true,
		Source:   dto.SourceCategory,
		Category: sess.Category,
		Page:     current,
	}), nil
}

// Search shows the first batch of a keyword search
func (u *UseCase) Search(ctx context.Context, chatID int64, text string) (*dto.PresentationBatch, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil, moverrors.ErrEmptyQuery
	}

	page, err := u.search(ctx, query, 1)
	if err != nil {
		u.logger.Error().Err(err).Int64("chat_id", chatID).Str("query", query).Msg("search failed")
		return nil, err
	}

	u.store.SetSearch(chatID, query, 1)

	return u.present(chatID, dto.PresentationBatch{
		Items:   page.Take(entities.SearchDisplayCount),
		HasMore: !page.Empty(),
		Source:  dto.SourceSearch,
		Query:   query,
		Page:    1,
	}), nil
}

// SearchMore shows the next batch of the stored search
func (u *UseCase) SearchMore(ctx context.Context, chatID int64) (*dto.PresentationBatch, error) {
	sc, ok := u.store.Search(chatID)
	if !ok {
		return nil, moverrors.ErrSearchExpired
	}

	next := sc.Page + 1
	page, err := u.search(ctx, sc.Query, next)
	if err != nil {
		u.logger.Error().Err(err).Int64("chat_id", chatID).Str("query", sc.Query).Int("page", next).Msg("search more failed")
		return nil, err
	}

	if page.Empty() {
		return nil, moverrors.ErrNoMoreResults
	}

	u.store.SetSearch(chatID, sc.Query, next)

	return u.present(chatID, dto.PresentationBatch{
		Items:   page.Take(entities.SearchDisplayCount),
		HasMore: true,
		Source:  dto.SourceSearch,
		Query:   sc.Query,
		Page:    next,
	}), nil
}

// ResolvePresented returns an item the chat has seen, asking the catalog when it is no longer cached
func (u *UseCase) ResolvePresented(ctx context.Context, chatID, movieID int64) (*entities.Movie, error) {
	if m, ok := u.store.Lookup(chatID, movieID); ok {
		return &m, nil
	}

	ctx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()

	m, err := u.catalog.GetMovie(ctx, movieID)
	if err != nil {
		return nil, normalizeCatalogError(err)
	}

	u.store.Remember(chatID, *m)
	return m, nil
}

func (u *UseCase) queryCategory(ctx context.Context, category entities.Category, page int) (*entities.ResultPage, error) {
	ctx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()

	res, err := u.catalog.QueryByCategory(ctx, category, page)
	if err != nil {
		return nil, normalizeCatalogError(err)
	}
	return res, nil
}

func (u *UseCase) search(ctx context.Context, query string, page int) (*entities.ResultPage, error) {
	ctx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()

	res, err := u.catalog.SearchByKeyword(ctx, query, page)
	if err != nil {
		return nil, normalizeCatalogError(err)
	}
	return res, nil
}

func (u *UseCase) present(chatID int64, batch dto.PresentationBatch) *dto.PresentationBatch {
	u.store.Remember(chatID, batch.Items...)
	u.metrics.RecordBatch(string(batch.Source))
	return &batch
}

// normalizeCatalogError maps every catalog failure to ErrCatalogUnavailable
func normalizeCatalogError(err error) error {
	if errors.Is(err, catalogerrors.ErrCatalogUnavailable) || errors.Is(err, catalogerrors.ErrMovieNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", catalogerrors.ErrCatalogUnavailable, err)
}
