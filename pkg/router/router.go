package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlerFunc is a typed endpoint handler. The request is bound from the
// query string (GET) or the JSON body (POST) before the handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can replace the request context
// by returning a non-nil one. Returning an error skips the handler and is
// rendered as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, regardless of the outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	ctx    context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a root router. The given context must carry the configs,
// logger, database, and token engine; it becomes the base of every request
// context.
func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{engine: gin.New(), ctx: ctx}
}

// Branch derives a router sharing the same route space but with an
// independent middleware chain. Closers registered on the root are inherited.
func (r *Router) Branch() *Router {
	return &Router{
		engine:  r.engine,
		ctx:     r.ctx,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

// Raw registers a plain http.Handler, used for endpoints that own their
// response format (e.g. prometheus metrics).
func (r *Router) Raw(method, pattern string, handler http.Handler) {
	r.engine.Handle(method, pattern, gin.WrapH(handler))
}

func (r *Router) Static(relativePath, root string) {
	r.engine.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
