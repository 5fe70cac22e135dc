package http

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fasthttp/router"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/MovieFlow/config"
	catalogerrors "github.com/Conte777/MovieFlow/internal/domain/catalog/errors"
	"github.com/Conte777/MovieFlow/internal/domain/notification/dto"
	notiferrors "github.com/Conte777/MovieFlow/internal/domain/notification/errors"
)

// mockRunner is a mock implementation of Runner
type mockRunner struct {
	runFunc func(ctx context.Context) (*dto.RunReport, error)
}

func (m *mockRunner) Run(ctx context.Context) (*dto.RunReport, error) {
	return m.runFunc(ctx)
}

const adminToken = "admin-secret"

func serve(t *testing.T, runner Runner, method string) *fasthttp.Response {
	t.Helper()
	return serveWithAuth(t, runner, method, "Bearer "+adminToken)
}

func serveWithAuth(t *testing.T, runner Runner, method, authorization string) *fasthttp.Response {
	t.Helper()

	rt := router.New()
	handler := NewHandler(runner, &config.NotificationsConfig{RunTimeout: time.Minute}, zerolog.Nop())
	NewRouter(handler, &config.ServiceConfig{AdminToken: adminToken}).RegisterRoutes(rt)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI("/admin/broadcast")
	if authorization != "" {
		ctx.Request.Header.Set(fasthttp.HeaderAuthorization, authorization)
	}

	rt.Handler(&ctx)
	return &ctx.Response
}

func TestBroadcast_ReturnsReport(t *testing.T) {
	runner := &mockRunner{runFunc: func(ctx context.Context) (*dto.RunReport, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return &dto.RunReport{RunID: "run-1", Items: 3, Recipients: 2, Sent: 2}, nil
	}}

	resp := serve(t, runner, fasthttp.MethodPost)
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())

	var body struct {
		Success bool          `json:"success"`
		Data    dto.RunReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "run-1", body.Data.RunID)
	assert.Equal(t, 2, body.Data.Sent)
}

func TestBroadcast_MapsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"run in progress", notiferrors.ErrRunInProgress, fasthttp.StatusConflict},
		{"catalog unavailable", catalogerrors.ErrCatalogUnavailable, fasthttp.StatusServiceUnavailable},
		{"sender not ready", notiferrors.ErrSenderNotReady, fasthttp.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), fasthttp.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{runFunc: func(ctx context.Context) (*dto.RunReport, error) {
				return nil, tt.err
			}}

			resp := serve(t, runner, fasthttp.MethodPost)
			assert.Equal(t, tt.want, resp.StatusCode())
			assert.Contains(t, string(resp.Body()), `"success":false`)
		})
	}
}

func TestBroadcast_OnlyPost(t *testing.T) {
	runner := &mockRunner{runFunc: func(ctx context.Context) (*dto.RunReport, error) {
		t.Fatal("runner must not be called")
		return nil, nil
	}}

	resp := serve(t, runner, fasthttp.MethodGet)
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, resp.StatusCode())
}

func TestBroadcast_RequiresAdminToken(t *testing.T) {
	runner := &mockRunner{runFunc: func(ctx context.Context) (*dto.RunReport, error) {
		t.Fatal("runner must not be called")
		return nil, nil
	}}

	for _, authorization := range []string{"", "Bearer wrong", adminToken} {
		resp := serveWithAuth(t, runner, fasthttp.MethodPost, authorization)
		assert.Equal(t, fasthttp.StatusUnauthorized, resp.StatusCode(), "authorization %q", authorization)
		assert.Contains(t, string(resp.Body()), `"success":false`)
	}
}

func TestBroadcast_RejectsEverythingWithoutConfiguredToken(t *testing.T) {
	runner := &mockRunner{runFunc: func(ctx context.Context) (*dto.RunReport, error) {
		t.Fatal("runner must not be called")
		return nil, nil
	}}

	rt := router.New()
	handler := NewHandler(runner, &config.NotificationsConfig{RunTimeout: time.Minute}, zerolog.Nop())
	NewRouter(handler, &config.ServiceConfig{}).RegisterRoutes(rt)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/admin/broadcast")
	ctx.Request.Header.Set(fasthttp.HeaderAuthorization, "Bearer ")

	rt.Handler(&ctx)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}
