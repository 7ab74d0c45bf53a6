package extensions

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/text/language"

	"github.com/onwalk/panelkit/pkg/featureflag"
)

// Registry is the composed, immutable routing surface built from a static
// list of extension definitions. Construction resolves every feature flag
// once; the registry never re-reads the environment afterwards.
type Registry struct {
	extensions []*RegisteredExtension
	routes     []*RegisteredRoute
	byPath     map[string]*RegisteredRoute
	sidebar    []SidebarSection

	// guarded holds routes with a guard rule, sorted by path length
	// descending so the most specific guard matches first.
	guarded []*RegisteredRoute
}

type options struct {
	lookup    featureflag.LookupFunc
	collation language.Tag
}

// Option configures registry construction.
type Option func(*options)

// WithEnv resolves feature flags through the given lookup instead of the
// process environment. Intended for tests and multi-registry setups.
func WithEnv(lookup featureflag.LookupFunc) Option {
	return func(o *options) { o.lookup = lookup }
}

// WithCollation sets the locale used for sidebar tie-breaking. The default
// is simplified Chinese, matching the production dashboard.
func WithCollation(tag language.Tag) Option {
	return func(o *options) { o.collation = tag }
}

// New builds a registry from extension definitions. A route is enabled only
// when both its own flag and its extension's flag resolve to enabled; flag
// absence means enabled. On duplicate paths the first registration wins —
// route uniqueness is enforced at definition time, not at lookup time.
func New(defs []Extension, opts ...Option) *Registry {
	o := options{collation: language.SimplifiedChinese}
	for _, opt := range opts {
		opt(&o)
	}

	registry := &Registry{
		extensions: make([]*RegisteredExtension, 0, len(defs)),
		byPath:     make(map[string]*RegisteredRoute),
	}

	for _, def := range defs {
		ext := registerExtension(def, o.lookup)
		registry.extensions = append(registry.extensions, ext)

		for _, route := range ext.Routes {
			registry.routes = append(registry.routes, route)
			if _, exists := registry.byPath[route.Path]; !exists {
				registry.byPath[route.Path] = route
			}
		}
	}

	registry.sidebar = buildSidebar(registry.routes, o.collation)
	registry.guarded = guardedRoutes(registry.routes)

	return registry
}

func registerExtension(def Extension, lookup featureflag.LookupFunc) *RegisteredExtension {
	ext := &RegisteredExtension{
		ID:      def.ID,
		Meta:    def.Meta,
		Enabled: true,
		Routes:  make([]*RegisteredRoute, 0, len(def.Routes)),
	}

	if def.FeatureFlag != nil {
		flag := resolveFlag(*def.FeatureFlag, lookup)
		ext.Flag = &flag
		ext.Enabled = flag.Enabled
	}

	for _, route := range def.Routes {
		registered := &RegisteredRoute{
			Route:       route,
			ExtensionID: def.ID,
			Enabled:     ext.Enabled,
		}
		if route.FeatureFlag != nil {
			flag := resolveFlag(*route.FeatureFlag, lookup)
			registered.Flag = &flag
			registered.Enabled = ext.Enabled && flag.Enabled
		}
		ext.Routes = append(ext.Routes, registered)
	}

	return ext
}

func resolveFlag(def featureflag.Definition, lookup featureflag.LookupFunc) featureflag.Flag {
	if lookup == nil {
		return featureflag.New(def)
	}
	return featureflag.NewInEnv(def, lookup)
}

// Extensions returns every registered extension in declaration order.
func (r *Registry) Extensions() []*RegisteredExtension {
	return r.extensions
}

// Routes returns every registered route in declaration order, including
// duplicates shadowed in the path table.
func (r *Registry) Routes() []*RegisteredRoute {
	return r.routes
}

// Sidebar returns the derived sidebar sections.
func (r *Registry) Sidebar() []SidebarSection {
	return r.sidebar
}

// GetRoute looks up a route by exact path. Pattern matching is the guard
// layer's job; this table only answers registered paths.
func (r *Registry) GetRoute(path string) (*RegisteredRoute, bool) {
	route, ok := r.byPath[path]
	return route, ok
}

// ResolveComponent resolves the view for a registered path. It fails with
// ErrRouteNotFound for unknown paths and ErrRouteDisabled for routes
// switched off by a feature flag; this is the single enforcement point that
// keeps a disabled feature's view from ever being instantiated.
func (r *Registry) ResolveComponent(ctx context.Context, path string) (http.Handler, error) {
	route, ok := r.byPath[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}
	if !route.Enabled {
		return nil, fmt.Errorf("%w: %s", ErrRouteDisabled, path)
	}
	if route.Loader == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, path)
	}
	return route.Loader(ctx)
}
