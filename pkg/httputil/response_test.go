package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestWriteResponse(t *testing.T) {
	var ctx fasthttp.RequestCtx

	WriteResponse(&ctx, map[string]int{"sent": 2})

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	assert.JSONEq(t, `{"success":true,"data":{"sent":2}}`, string(ctx.Response.Body()))
}

func TestWriteErrorResponse(t *testing.T) {
	var ctx fasthttp.RequestCtx

	WriteErrorResponse(&ctx, "broadcast run already in progress", fasthttp.StatusConflict)

	assert.Equal(t, fasthttp.StatusConflict, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"success":false,"error":"broadcast run already in progress"}`, string(ctx.Response.Body()))
}

func TestWriteJSON_MarshalFailure(t *testing.T) {
	var ctx fasthttp.RequestCtx

	WriteJSON(&ctx, map[string]interface{}{"bad": make(chan int)}, fasthttp.StatusOK)

	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
}
