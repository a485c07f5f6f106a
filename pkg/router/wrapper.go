package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	pattern string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := append([]MiddlewareFunc{}, router.befores...)
	afters := append([]MiddlewareFunc{}, router.afters...)
	closers := router.closers

	return func(c *gin.Context) {
		state := &requestState{startTime: time.Now(), route: pattern}

		var ctx context.Context = valueContext{Context: c.Request.Context(), values: router.values}
		ctx = context.WithValue(ctx, requestStateKey{}, state)
		ctx = xcontext.WithHTTPRequest(ctx, c.Request)
		ctx = xcontext.WithHTTPWriter(ctx, c.Writer)

		defer func() {
			for _, closer := range *closers {
				closer(ctx)
			}
		}()

		resp, err := runHandler(ctx, c, method, befores, afters, handler, state)
		if err != nil {
			state.err = err
			state.status = writeError(c, err)
			return
		}

		state.status = writeResponse(c, resp)
	}
}

func runHandler[Request, Response any](
	ctx context.Context,
	c *gin.Context,
	method string,
	befores, afters []MiddlewareFunc,
	handler HandlerFunc[Request, Response],
	state *requestState,
) (*Response, error) {
	var err error
	for _, before := range befores {
		if ctx, err = before(ctx); err != nil {
			return nil, err
		}
	}

	var req Request
	if err := bindRequest(c, method, &req); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid request")
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return nil, err
	}

	state.response = resp
	for _, after := range afters {
		if ctx, err = after(ctx); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func bindRequest(c *gin.Context, method string, req any) error {
	if len(c.Params) > 0 {
		if err := c.ShouldBindUri(req); err != nil {
			return err
		}
	}

	switch method {
	case http.MethodGet, http.MethodDelete:
		return c.ShouldBindQuery(req)
	case http.MethodPost, http.MethodPut:
		if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return errors.New("unsupported method")
	}
}
