// Package tmdb implements the catalog client on top of the TMDB REST API
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/MovieFlow/config"
	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
	catalogerrors "github.com/Conte777/MovieFlow/internal/domain/catalog/errors"
	"github.com/Conte777/MovieFlow/internal/infrastructure/metrics"
)

// discoverWindowYears limits genre discovery to recent releases
const discoverWindowYears = 10

const (
	endpointDiscover   = "discover"
	endpointTopRated   = "top_rated"
	endpointTrending   = "trending"
	endpointNowPlaying = "now_playing"
	endpointSearch     = "search"
	endpointMovie      = "movie"
)

// Client implements deps.Client using the TMDB v3 API
type Client struct {
	http    *fasthttp.Client
	cfg     *config.TMDBConfig
	breaker *gobreaker.CircuitBreaker[[]byte]
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// NewClient creates a new TMDB client with default breaker settings
func NewClient(cfg *config.TMDBConfig, m *metrics.Metrics, logger zerolog.Logger) *Client {
	return NewClientWithBreaker(cfg, DefaultBreakerSettings(), m, logger)
}

// NewClientWithBreaker creates a new TMDB client with custom breaker settings
func NewClientWithBreaker(cfg *config.TMDBConfig, s BreakerSettings, m *metrics.Metrics, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "tmdb-client").Logger()

	return &Client{
		http: &fasthttp.Client{
			Name:                "movieflow",
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
		cfg:     cfg,
		breaker: newBreaker(s, m, logger),
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Healthy reports whether the circuit breaker lets requests through
func (c *Client) Healthy() bool {
	return c.breaker.State() != gobreaker.StateOpen
}

// QueryByCategory returns a page for any supported category
func (c *Client) QueryByCategory(ctx context.Context, category entities.Category, page int) (*entities.ResultPage, error) {
	switch category {
	case entities.CategoryTopRated:
		return c.QueryTopRated(ctx, page)
	case entities.CategoryTrending:
		return c.QueryTrending(ctx)
	case entities.CategoryNewReleases:
		return c.QueryNewReleases(ctx, page)
	}

	genreID, ok := category.GenreID()
	if !ok {
		return nil, fmt.Errorf("%w: unsupported category %q", catalogerrors.ErrCatalogUnavailable, string(category))
	}

	args := c.baseArgs()
	defer fasthttp.ReleaseArgs(args)
	args.SetUint("with_genres", genreID)
	args.Set("sort_by", "popularity.desc")
	args.Set("primary_release_date.gte", fmt.Sprintf("%d-01-01", c.now().Year()-discoverWindowYears))
	args.SetUint("page", normalizePage(page))

	return c.fetchPage(ctx, endpointDiscover, "/discover/movie", args)
}

// QueryTopRated returns a page of top rated movies
func (c *Client) QueryTopRated(ctx context.Context, page int) (*entities.ResultPage, error) {
	args := c.baseArgs()
	defer fasthttp.ReleaseArgs(args)
	args.SetUint("page", normalizePage(page))

	return c.fetchPage(ctx, endpointTopRated, "/movie/top_rated", args)
}

// QueryTrending returns the weekly trending listing
func (c *Client) QueryTrending(ctx context.Context) (*entities.ResultPage, error) {
	args := c.baseArgs()
	defer fasthttp.ReleaseArgs(args)

	return c.fetchPage(ctx, endpointTrending, "/trending/movie/week", args)
}

// QueryNewReleases returns a page of movies now playing
func (c *Client) QueryNewReleases(ctx context.Context, page int) (*entities.ResultPage, error) {
	args := c.baseArgs()
	defer fasthttp.ReleaseArgs(args)
	args.SetUint("page", normalizePage(page))

	return c.fetchPage(ctx, endpointNowPlaying, "/movie/now_playing", args)
}

// SearchByKeyword returns a page of movies matching text
func (c *Client) SearchByKeyword(ctx context.Context, text string, page int) (*entities.ResultPage, error) {
	args := c.baseArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("query", text)
	args.SetUint("page", normalizePage(page))
	args.Set("include_adult", "false")

	return c.fetchPage(ctx, endpointSearch, "/search/movie", args)
}

// GetMovie returns a single movie by id
func (c *Client) GetMovie(ctx context.Context, id int64) (*entities.Movie, error) {
	if id <= 0 {
		return nil, catalogerrors.ErrMovieNotFound
	}

	args := c.baseArgs()
	defer fasthttp.ReleaseArgs(args)

	body, err := c.execute(ctx, endpointMovie, "/movie/"+strconv.FormatInt(id, 10), args)
	if err != nil {
		return nil, err
	}

	var dto movieDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		c.logger.Error().Err(err).Int64("movie_id", id).Msg("failed to decode movie")
		return nil, fmt.Errorf("%w: decode movie: %v", catalogerrors.ErrCatalogUnavailable, err)
	}

	movie := dto.toEntity(c.cfg.ImageBaseURL)
	return &movie, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint, path string, args *fasthttp.Args) (*entities.ResultPage, error) {
	body, err := c.execute(ctx, endpoint, path, args)
	if err != nil {
		return nil, err
	}

	var dto pageDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("failed to decode result page")
		return nil, fmt.Errorf("%w: decode %s: %v", catalogerrors.ErrCatalogUnavailable, endpoint, err)
	}

	page := dto.toEntity(c.cfg.ImageBaseURL)

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("page", page.Page).
		Int("items", len(page.Items)).
		Msg("catalog page received")

	return page, nil
}

// execute performs the request under the circuit breaker and normalizes every failure
func (c *Client) execute(ctx context.Context, endpoint, path string, args *fasthttp.Args) ([]byte, error) {
	start := time.Now()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint, path, args)
	})
	if err == nil {
		c.metrics.RecordCatalogRequest(endpoint, true, time.Since(start).Seconds())
		return body, nil
	}

	if errors.Is(err, catalogerrors.ErrMovieNotFound) {
		c.metrics.RecordCatalogRequest(endpoint, true, time.Since(start).Seconds())
		return nil, err
	}

	if isRejected(err) {
		c.metrics.RecordCatalogRejected(endpoint)
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("catalog request rejected by circuit breaker")
	} else {
		c.metrics.RecordCatalogRequest(endpoint, false, time.Since(start).Seconds())
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("catalog request failed")
	}

	if errors.Is(err, catalogerrors.ErrCatalogUnavailable) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s: %v", catalogerrors.ErrCatalogUnavailable, endpoint, err)
}

func (c *Client) do(ctx context.Context, endpoint, path string, args *fasthttp.Args) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.cfg.BaseURL + path + "?" + args.String())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return nil, err
	}

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusOK:
	case status == fasthttp.StatusNotFound && endpoint == endpointMovie:
		return nil, catalogerrors.ErrMovieNotFound
	default:
		var st statusDTO
		_ = json.Unmarshal(resp.Body(), &st)
		return nil, fmt.Errorf("unexpected status %d: %s", status, st.StatusMessage)
	}

	return append([]byte(nil), resp.Body()...), nil
}

// deadline is the earlier of the context deadline and the configured timeout
func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}

func (c *Client) baseArgs() *fasthttp.Args {
	args := fasthttp.AcquireArgs()
	args.Set("api_key", c.cfg.APIKey)
	args.Set("language", c.cfg.Language)
	return args
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
