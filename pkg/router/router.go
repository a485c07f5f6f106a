package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after the handler. It may return a new
// context which is passed to the next middleware and the handler.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of the request, even if a middleware or
// the handler failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	// values holds the dependencies (db, configs, logger...) shared by all
	// requests.
	values context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers *[]CloserFunc
}

func New(values context.Context) *Router {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		xcontext.Logger(values).Errorf("Panic while handling %s %s: %v",
			c.Request.Method, c.Request.URL.Path, recovered)
		writeError(c, errorx.Unknown)
	}))
	engine.NoRoute(func(c *gin.Context) {
		writeError(c, errorx.New(errorx.NotFound, "Not found %s", c.Request.URL.Path))
	})
	engine.NoMethod(func(c *gin.Context) {
		writeError(c, errorx.New(errorx.MethodNotAllowed, "Method Not Allowed"))
	})

	return &Router{
		engine:  engine,
		inner:   engine,
		values:  values,
		closers: &[]CloserFunc{},
	}
}

// Branch creates a child router that shares the path space of its parent but
// owns a copy of the middlewares. Middlewares added to the branch do not
// affect the parent.
func (r *Router) Branch() *Router {
	return &Router{
		engine:  r.engine,
		inner:   r.inner,
		values:  r.values,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: r.closers,
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

// AddCloser registers a closer for every route of the router tree.
func (r *Router) AddCloser(closer CloserFunc) {
	*r.closers = append(*r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, pattern, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, pattern, handler))
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.PUT(pattern, wrapHandler(r, http.MethodPut, pattern, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.DELETE(pattern, wrapHandler(r, http.MethodDelete, pattern, handler))
}

// Handle serves a plain http.Handler, bypassing the middlewares and the
// response envelope.
func (r *Router) Handle(method, pattern string, handler http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(handler))
}
