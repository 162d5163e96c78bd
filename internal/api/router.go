package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/rop3/pkg/rop/solo"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Route is one registered (path, method) pair.
type Route struct {
	Path   string
	Method string
}

func (r Route) String() string {
	return r.Method + " " + r.Path
}

// Router maps routes onto handlers. It is safe for concurrent use.
type Router struct {
	mu       sync.RWMutex
	order    []Route
	handlers map[Route]HandlerFunc

	limiter *routeLimiter
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for dispatch records.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRateLimit enables a token bucket per route. An RPS of zero leaves
// limiting off.
func WithRateLimit(cfg types.RateLimitConfig) Option {
	return func(r *Router) {
		r.limiter = newRouteLimiter(cfg.RPS, cfg.Burst, 0)
	}
}

// withClock replaces the time source; used by tests.
func withClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// NewRouter returns an empty Router.
func NewRouter(opts ...Option) *Router {
	r := &Router{
		handlers: make(map[Route]HandlerFunc),
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds handler for (path, method). The method is matched
// case-insensitively. Registering the same pair twice returns
// ErrRouteExists.
func (r *Router) Register(path, method string, handler HandlerFunc) error {
	route := newRoute(path, method)
	if route.Path == "" || route.Method == "" {
		return ErrInvalidRoute
	}
	if handler == nil {
		return ErrNilHandlerFunc
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handlers[route]; ok {
		return fmt.Errorf("%w: %s", ErrRouteExists, route)
	}
	r.handlers[route] = handler
	r.order = append(r.order, route)
	return nil
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Route, len(r.order))
	copy(out, r.order)
	return out
}

// Dispatch runs the handler registered for req and returns its response.
// Unknown routes, rate-limited calls, and failure results all come back as
// error-shaped responses.
func (r *Router) Dispatch(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = newRequestID()
	}
	route := newRoute(req.Path, req.Method)
	req.Method = route.Method

	r.mu.RLock()
	handler, ok := r.handlers[route]
	r.mu.RUnlock()

	log := r.logger.With("request_id", req.ID, "route", route.String())

	if !ok {
		log.WarnContext(ctx, "no route")
		return ErrorResponse(req.Method, fmt.Errorf("%w: %s", ErrRouteNotFound, route))
	}
	if !r.limiter.allow(route.String(), r.now()) {
		log.WarnContext(ctx, "rate limited")
		return ErrorResponse(req.Method, ErrRateLimited)
	}

	failed := func(ctx context.Context, err error) Response {
		log.WarnContext(ctx, "request failed", "error", err)
		return ErrorResponse(req.Method, err)
	}
	return solo.Finally(ctx, handler(ctx, req),
		func(ctx context.Context, resp Response) Response {
			log.DebugContext(ctx, "request handled", "status", resp.Status)
			return resp
		},
		failed,
		failed,
	)
}

func newRoute(path, method string) Route {
	return Route{
		Path:   strings.TrimSpace(path),
		Method: strings.ToUpper(strings.TrimSpace(method)),
	}
}

// newRequestID returns a UUID v7, falling back to v4 if v7 generation fails.
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
