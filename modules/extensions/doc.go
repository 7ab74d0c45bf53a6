// Package extensions composes declarative extension definitions into the
// dashboard's navigable surface.
//
// An Extension bundles routes, each carrying an optional guard rule, feature
// flag, sidebar placement and a lazy view loader. New resolves the flags
// once and produces an immutable Registry exposing three views of the same
// data: a path-keyed route table, a sorted sidebar section tree, and a
// component resolver that refuses to instantiate disabled views.
//
// Enablement composes downward: a route is enabled only when its own flag
// and its extension's flag both resolve to enabled, so switching an
// extension off takes its whole surface with it.
//
// The process normally holds a single registry, built on first Load and
// cached until ResetCache; flags read the environment at construction time,
// which is why tests that flip flag variables must reset the cache. New
// remains available for building independent registries in one process.
//
//	registry := extensions.Load(builtinExtensions)
//	view, err := registry.ResolveComponent(ctx, "/panel/agent")
//	switch {
//	case errors.Is(err, extensions.ErrRouteDisabled):
//		// feature is gated off
//	case errors.Is(err, extensions.ErrRouteNotFound):
//		// nothing registered here
//	}
//
// The guard layer replicates the dashboard's page-level authorization:
// GuardMiddleware matches the most specific guarded route (exact or prefix,
// per the route's declared strategy), evaluates its rule against the session
// user from the request context, and redirects denied callers to the
// route's redirect targets or the login page.
package extensions
