package httputil

import (
	"testing"

	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	pkgerrors "github.com/Conte777/MovieFlow/pkg/errors"
)

func serveWithToken(token, header string) (*fasthttp.Response, bool) {
	called := false

	rt := router.New()
	NewMiddlewareGroup(rt.Group("/admin")).
		Use(RequireBearerToken(token, pkgerrors.NewMapper(zerolog.Nop()))).
		POST("/run", func(ctx *fasthttp.RequestCtx) {
			called = true
			ctx.SetStatusCode(fasthttp.StatusNoContent)
		})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/admin/run")
	if header != "" {
		ctx.Request.Header.Set(fasthttp.HeaderAuthorization, header)
	}

	rt.Handler(&ctx)
	return &ctx.Response, called
}

func TestRequireBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"valid token", "s3cret", "Bearer s3cret", fasthttp.StatusNoContent, true},
		{"missing header", "s3cret", "", fasthttp.StatusUnauthorized, false},
		{"wrong token", "s3cret", "Bearer nope", fasthttp.StatusUnauthorized, false},
		{"missing scheme", "s3cret", "s3cret", fasthttp.StatusUnauthorized, false},
		{"no token configured", "", "Bearer ", fasthttp.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, called := serveWithToken(tt.token, tt.header)
			assert.Equal(t, tt.wantStatus, resp.StatusCode())
			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				assert.Contains(t, string(resp.Body()), `"success":false`)
			}
		})
	}
}
