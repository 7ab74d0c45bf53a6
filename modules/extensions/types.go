package extensions

import (
	"context"
	"net/http"

	"github.com/onwalk/panelkit/pkg/access"
	"github.com/onwalk/panelkit/pkg/featureflag"
)

// MatchStrategy controls how the page-level guard matches a request path
// against a route.
type MatchStrategy string

const (
	// MatchExact matches the request path verbatim.
	MatchExact MatchStrategy = "exact"
	// MatchPrefix matches any request path beginning with the route path.
	MatchPrefix MatchStrategy = "startsWith"
)

// LoaderFunc lazily produces the view for a route. Loaders run only when a
// route is resolved, so a disabled feature's view is never instantiated.
type LoaderFunc func(ctx context.Context) (http.Handler, error)

// Meta describes an extension for catalog and about surfaces.
type Meta struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version,omitempty"`
	Author      string   `json:"author,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// MenuItem places a route in the dashboard sidebar.
type MenuItem struct {
	// Section is the literal title of the sidebar group.
	Section string `json:"section"`

	// Order positions the item within its section, ascending. Zero or
	// negative means unspecified, which sorts after every ordered item.
	Order int `json:"order,omitempty"`

	Badge string `json:"badge,omitempty"`

	// Hidden keeps the route registered but out of the sidebar.
	Hidden bool `json:"hidden,omitempty"`
}

// Redirect names the targets the guard sends denied callers to.
type Redirect struct {
	Unauthenticated string `json:"unauthenticated,omitempty"`
	Forbidden       string `json:"forbidden,omitempty"`
}

// Route is a single navigable surface declared by an extension.
type Route struct {
	Path        string                  `json:"path"`
	Label       string                  `json:"label"`
	Description string                  `json:"description,omitempty"`
	Loader      LoaderFunc              `json:"-"`
	Match       MatchStrategy           `json:"match,omitempty"`
	Guard       *access.Rule            `json:"guard,omitempty"`
	Sidebar     *MenuItem               `json:"sidebar,omitempty"`
	FeatureFlag *featureflag.Definition `json:"feature_flag,omitempty"`
	Redirect    *Redirect               `json:"redirect,omitempty"`
}

// matchStrategy returns the declared strategy, defaulting to exact.
func (r Route) matchStrategy() MatchStrategy {
	if r.Match == "" {
		return MatchExact
	}
	return r.Match
}

// Extension is a self-contained bundle of routes composing one dashboard
// area. Definitions are static data; the registry resolves them once.
type Extension struct {
	ID          string                  `json:"id"`
	Meta        Meta                    `json:"meta"`
	Routes      []Route                 `json:"routes"`
	FeatureFlag *featureflag.Definition `json:"feature_flag,omitempty"`
}

// RegisteredRoute is a Route resolved against the feature-flag environment.
// Enabled can never be true when the owning extension is disabled.
type RegisteredRoute struct {
	Route
	ExtensionID string            `json:"extension_id"`
	Flag        *featureflag.Flag `json:"flag,omitempty"`
	Enabled     bool              `json:"enabled"`
}

// RegisteredExtension is an Extension resolved against the feature-flag
// environment, with its routes in registered form.
type RegisteredExtension struct {
	ID      string             `json:"id"`
	Meta    Meta               `json:"meta"`
	Flag    *featureflag.Flag  `json:"flag,omitempty"`
	Enabled bool               `json:"enabled"`
	Routes  []*RegisteredRoute `json:"routes"`
}

// SidebarItem is one rendered sidebar entry. Disabled items still render,
// greyed out, rather than disappearing.
type SidebarItem struct {
	Route    *RegisteredRoute `json:"route"`
	Disabled bool             `json:"disabled"`
}

// SidebarSection is a named, ordered group of sidebar items.
type SidebarSection struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Order int           `json:"order,omitempty"`
	Items []SidebarItem `json:"items"`
}
