package httputil

import (
	"crypto/subtle"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	pkgerrors "github.com/Conte777/MovieFlow/pkg/errors"
)

// ErrUnauthorized is returned when a request lacks a valid bearer token
var ErrUnauthorized = pkgerrors.NewUnauthorizedError("missing or invalid bearer token")

// Middleware is a function that wraps a handler
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// MiddlewareGroup wraps a router group with middleware support
type MiddlewareGroup struct {
	group      *router.Group
	middleware []Middleware
}

// NewMiddlewareGroup creates a new middleware group
func NewMiddlewareGroup(group *router.Group) *MiddlewareGroup {
	return &MiddlewareGroup{group: group}
}

// Use adds middleware to the group
func (g *MiddlewareGroup) Use(m ...Middleware) *MiddlewareGroup {
	g.middleware = append(g.middleware, m...)
	return g
}

// applyMiddleware applies all middleware to a handler in reverse order
func (g *MiddlewareGroup) applyMiddleware(handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	for i := len(g.middleware) - 1; i >= 0; i-- {
		handler = g.middleware[i](handler)
	}
	return handler
}

// POST registers a POST handler
func (g *MiddlewareGroup) POST(path string, handler fasthttp.RequestHandler) {
	g.group.POST(path, g.applyMiddleware(handler))
}

// RequireBearerToken rejects requests whose Authorization header is not "Bearer <token>".
// An empty token rejects every request.
func RequireBearerToken(token string, mapper *pkgerrors.Mapper) Middleware {
	expected := []byte("Bearer " + token)

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			got := ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)
			if token == "" || subtle.ConstantTimeCompare(got, expected) != 1 {
				status, msg := mapper.MapErrorToHTTP(ErrUnauthorized)
				WriteErrorResponse(ctx, msg, status)
				return
			}
			next(ctx)
		}
	}
}
