package extensions

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/onwalk/panelkit/pkg/access"
)

// defaultLoginPath is where denied callers land when a route declares no
// redirect targets of its own.
const defaultLoginPath = "/login"

// guardedRoutes filters routes carrying a guard rule and sorts them by path
// length descending, so the most specific guard wins a prefix match.
func guardedRoutes(routes []*RegisteredRoute) []*RegisteredRoute {
	guarded := make([]*RegisteredRoute, 0, len(routes))
	for _, route := range routes {
		if route.Guard != nil {
			guarded = append(guarded, route)
		}
	}
	sort.SliceStable(guarded, func(i, j int) bool {
		return len(guarded[i].Path) > len(guarded[j].Path)
	})
	return guarded
}

// MatchGuard returns the most specific guarded route matching the request
// path, honoring each route's declared match strategy.
func (r *Registry) MatchGuard(pathname string) (*RegisteredRoute, bool) {
	for _, route := range r.guarded {
		switch route.matchStrategy() {
		case MatchPrefix:
			if strings.HasPrefix(pathname, route.Path) {
				return route, true
			}
		default:
			if pathname == route.Path {
				return route, true
			}
		}
	}
	return nil, false
}

// decisionCtxKey is the context key for the guard's access decision.
type decisionCtxKey struct{}

// DecisionFromContext retrieves the access decision the guard middleware
// stored for an allowed request.
func DecisionFromContext(ctx context.Context) (access.Decision, bool) {
	decision, ok := ctx.Value(decisionCtxKey{}).(access.Decision)
	return decision, ok
}

// GuardOption configures the guard middleware and router.
type GuardOption func(*guardOptions)

type guardOptions struct {
	logger    *slog.Logger
	loginPath string
}

// WithLogger sets the structured logger for denial and loader-failure logs.
// The default discards everything.
func WithLogger(logger *slog.Logger) GuardOption {
	return func(o *guardOptions) { o.logger = logger }
}

// WithLoginPath overrides the fallback redirect target for denied callers.
func WithLoginPath(path string) GuardOption {
	return func(o *guardOptions) { o.loginPath = path }
}

func newGuardOptions(opts []GuardOption) guardOptions {
	o := guardOptions{
		logger:    slog.New(slog.DiscardHandler),
		loginPath: defaultLoginPath,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// GuardMiddleware enforces route guards on every request. The session user
// is read from the request context (see access.WithUser); an absent user is
// an unauthenticated guest. Denied requests are redirected to the route's
// declared target, falling back to the login path. Allowed decisions are
// stored in the context for downstream tenant scoping.
func (r *Registry) GuardMiddleware(opts ...GuardOption) func(http.Handler) http.Handler {
	o := newGuardOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route, ok := r.MatchGuard(req.URL.Path)
			if !ok {
				next.ServeHTTP(w, req)
				return
			}

			user, _ := access.UserFromContext(req.Context())
			decision := access.Resolve(user, route.Guard)
			if decision.Allowed {
				ctx := context.WithValue(req.Context(), decisionCtxKey{}, decision)
				next.ServeHTTP(w, req.WithContext(ctx))
				return
			}

			destination := denialDestination(route.Redirect, decision.Reason, o.loginPath)
			o.logger.InfoContext(req.Context(), "access denied",
				slog.String("path", req.URL.Path),
				slog.String("guard", route.Path),
				slog.String("reason", string(decision.Reason)),
				slog.String("role", string(decision.Role)),
				slog.String("redirect", destination),
			)
			http.Redirect(w, req, destination, http.StatusSeeOther)
		})
	}
}

func denialDestination(redirect *Redirect, reason access.Reason, loginPath string) string {
	if redirect == nil {
		return loginPath
	}
	if reason == access.ReasonUnauthenticated {
		if redirect.Unauthenticated != "" {
			return redirect.Unauthenticated
		}
		return loginPath
	}
	if redirect.Forbidden != "" {
		return redirect.Forbidden
	}
	if redirect.Unauthenticated != "" {
		return redirect.Unauthenticated
	}
	return loginPath
}

// Handler mounts every registered route behind the guard middleware. Views
// are resolved lazily per request through ResolveComponent, so disabled and
// unknown routes answer 404 while loader failures answer 500. Something
// upstream is expected to populate the session user into the request context.
func (r *Registry) Handler(opts ...GuardOption) http.Handler {
	o := newGuardOptions(opts)

	router := chi.NewRouter()
	router.Use(r.GuardMiddleware(opts...))

	for path, route := range r.byPath {
		handler := r.routeHandler(path, o.logger)
		router.Handle(path, handler)
		if route.matchStrategy() == MatchPrefix {
			router.Handle(path+"/*", handler)
		}
	}

	return router
}

func (r *Registry) routeHandler(path string, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		view, err := r.ResolveComponent(req.Context(), path)
		switch {
		case err == nil:
			view.ServeHTTP(w, req)
		case errors.Is(err, ErrRouteDisabled), errors.Is(err, ErrRouteNotFound):
			http.NotFound(w, req)
		default:
			logger.ErrorContext(req.Context(), "route loader failed",
				slog.String("path", path),
				slog.Any("error", err),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}
