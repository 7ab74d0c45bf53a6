package extensions_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onwalk/panelkit/modules/extensions"
	"github.com/onwalk/panelkit/pkg/access"
	"github.com/onwalk/panelkit/pkg/featureflag"
)

const agentFlagVar = "FEATURE_AGENT_MODULE"

func textLoader(body string) extensions.LoaderFunc {
	return func(ctx context.Context) (http.Handler, error) {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		}), nil
	}
}

func staticEnv(values map[string]string) featureflag.LookupFunc {
	return func(key string) string { return values[key] }
}

func userCenterExtension() extensions.Extension {
	return extensions.Extension{
		ID:   "user-center",
		Meta: extensions.Meta{Title: "User Center"},
		Routes: []extensions.Route{
			{
				Path:    "/panel",
				Label:   "Overview",
				Loader:  textLoader("overview"),
				Guard:   &access.Rule{Roles: []access.Role{access.RoleUser, access.RoleOperator, access.RoleAdmin}},
				Sidebar: &extensions.MenuItem{Section: "Account", Order: 1},
			},
			{
				Path:   "/panel/agent",
				Label:  "Agent",
				Loader: textLoader("agent"),
				Guard:  &access.Rule{Roles: []access.Role{access.RoleUser, access.RoleOperator, access.RoleAdmin}},
				FeatureFlag: &featureflag.Definition{
					ID:             "agent-module",
					EnvVar:         agentFlagVar,
					DefaultEnabled: true,
				},
				Sidebar: &extensions.MenuItem{Section: "Account", Order: 2},
			},
			{
				Path:     "/panel/management",
				Label:    "Management",
				Loader:   textLoader("management"),
				Match:    extensions.MatchPrefix,
				Guard:    &access.Rule{Roles: []access.Role{access.RoleAdmin}},
				Redirect: &extensions.Redirect{Forbidden: "/panel"},
				Sidebar:  &extensions.MenuItem{Section: "Administration", Order: 1},
			},
		},
	}
}

func cloudIaCExtension() extensions.Extension {
	return extensions.Extension{
		ID:   "cloud-iac",
		Meta: extensions.Meta{Title: "Cloud IaC"},
		FeatureFlag: &featureflag.Definition{
			ID:             "cloud-iac",
			EnvVar:         "FEATURE_CLOUD_IAC",
			DefaultEnabled: true,
		},
		Routes: []extensions.Route{
			{
				Path:    "/panel/iac",
				Label:   "Catalog",
				Loader:  textLoader("catalog"),
				Sidebar: &extensions.MenuItem{Section: "Infrastructure", Order: 3},
			},
			{
				Path:   "/panel/iac/actions",
				Label:  "Actions",
				Loader: textLoader("actions"),
				FeatureFlag: &featureflag.Definition{
					ID:             "cloud-iac-actions",
					EnvVar:         "FEATURE_CLOUD_IAC_ACTIONS",
					DefaultEnabled: true,
				},
				Sidebar: &extensions.MenuItem{Section: "Infrastructure", Order: 4},
			},
		},
	}
}

func builtinDefs() []extensions.Extension {
	return []extensions.Extension{userCenterExtension(), cloudIaCExtension()}
}

func TestNewComposesEnablement(t *testing.T) {
	t.Parallel()

	t.Run("flags absent means everything enabled", func(t *testing.T) {
		t.Parallel()
		registry := extensions.New(builtinDefs(), extensions.WithEnv(staticEnv(nil)))

		for _, route := range registry.Routes() {
			assert.True(t, route.Enabled, "route %s", route.Path)
		}
	})

	t.Run("route flag disables only that route", func(t *testing.T) {
		t.Parallel()
		registry := extensions.New(builtinDefs(), extensions.WithEnv(staticEnv(map[string]string{
			agentFlagVar: "0",
		})))

		agent, ok := registry.GetRoute("/panel/agent")
		require.True(t, ok)
		assert.False(t, agent.Enabled)

		panel, ok := registry.GetRoute("/panel")
		require.True(t, ok)
		assert.True(t, panel.Enabled)
	})

	t.Run("disabled extension disables every route", func(t *testing.T) {
		t.Parallel()
		registry := extensions.New(builtinDefs(), extensions.WithEnv(staticEnv(map[string]string{
			"FEATURE_CLOUD_IAC": "off",
		})))

		catalog, ok := registry.GetRoute("/panel/iac")
		require.True(t, ok)
		assert.False(t, catalog.Enabled)

		// The route's own flag defaults to enabled but cannot override the
		// disabled parent extension.
		actions, ok := registry.GetRoute("/panel/iac/actions")
		require.True(t, ok)
		assert.False(t, actions.Enabled)
		require.NotNil(t, actions.Flag)
		assert.True(t, actions.Flag.Enabled)
	})

	t.Run("extension metadata survives registration", func(t *testing.T) {
		t.Parallel()
		registry := extensions.New(builtinDefs(), extensions.WithEnv(staticEnv(nil)))

		exts := registry.Extensions()
		require.Len(t, exts, 2)
		assert.Equal(t, "user-center", exts[0].ID)
		assert.Equal(t, "User Center", exts[0].Meta.Title)
		assert.Len(t, exts[0].Routes, 3)
		for _, route := range exts[0].Routes {
			assert.Equal(t, "user-center", route.ExtensionID)
		}
	})
}

func TestNewFirstRegistrationWins(t *testing.T) {
	t.Parallel()

	defs := []extensions.Extension{
		{
			ID:     "first",
			Routes: []extensions.Route{{Path: "/panel", Label: "First", Loader: textLoader("first")}},
		},
		{
			ID:     "second",
			Routes: []extensions.Route{{Path: "/panel", Label: "Second", Loader: textLoader("second")}},
		},
	}

	registry := extensions.New(defs, extensions.WithEnv(staticEnv(nil)))

	route, ok := registry.GetRoute("/panel")
	require.True(t, ok)
	assert.Equal(t, "first", route.ExtensionID)

	// The shadowed duplicate stays visible in the flat route list.
	assert.Len(t, registry.Routes(), 2)
}

func TestGetRouteIsExact(t *testing.T) {
	t.Parallel()

	registry := extensions.New(builtinDefs(), extensions.WithEnv(staticEnv(nil)))

	_, ok := registry.GetRoute("/panel/management/users")
	assert.False(t, ok, "prefix matching belongs to the guard layer, not the route table")
}

func TestResolveComponent(t *testing.T) {
	t.Parallel()

	t.Run("enabled route resolves its view", func(t *testing.T) {
		t.Parallel()
		registry := extensions.New(builtinDefs(), extensions.WithEnv(staticEnv(nil)))

		view, err := registry.ResolveComponent(context.Background(), "/panel")
		require.NoError(t, err)
		assert.NotNil(t, view)
	})

	t.Run("unknown path", func(t *testing.T) {
		t.Parallel()
		registry := extensions.New(builtinDefs(), extensions.WithEnv(staticEnv(nil)))

		_, err := registry.ResolveComponent(context.Background(), "/panel/missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, extensions.ErrRouteNotFound)
		assert.NotContains(t, err.Error(), "disabled")
	})

	t.Run("disabled route", func(t *testing.T) {
		t.Parallel()
		registry := extensions.New(builtinDefs(), extensions.WithEnv(staticEnv(map[string]string{
			agentFlagVar: "0",
		})))

		_, err := registry.ResolveComponent(context.Background(), "/panel/agent")
		require.Error(t, err)
		assert.ErrorIs(t, err, extensions.ErrRouteDisabled)
		assert.Contains(t, err.Error(), "disabled")
	})

	t.Run("loader failure propagates unchanged", func(t *testing.T) {
		t.Parallel()
		loaderErr := errors.New("import failed")
		registry := extensions.New([]extensions.Extension{{
			ID: "broken",
			Routes: []extensions.Route{{
				Path:  "/broken",
				Label: "Broken",
				Loader: func(ctx context.Context) (http.Handler, error) {
					return nil, loaderErr
				},
			}},
		}}, extensions.WithEnv(staticEnv(nil)))

		_, err := registry.ResolveComponent(context.Background(), "/broken")
		assert.ErrorIs(t, err, loaderErr)
	})

	t.Run("missing loader", func(t *testing.T) {
		t.Parallel()
		registry := extensions.New([]extensions.Extension{{
			ID:     "no-loader",
			Routes: []extensions.Route{{Path: "/empty", Label: "Empty"}},
		}}, extensions.WithEnv(staticEnv(nil)))

		_, err := registry.ResolveComponent(context.Background(), "/empty")
		assert.ErrorIs(t, err, extensions.ErrNoLoader)
	})
}

func TestProcessCache(t *testing.T) {
	t.Cleanup(extensions.ResetCache)

	t.Run("load builds once and caches", func(t *testing.T) {
		extensions.ResetCache()

		first := extensions.Load(builtinDefs())
		second := extensions.Load(nil)
		assert.Same(t, first, second)

		cachedReg, ok := extensions.Cached()
		require.True(t, ok)
		assert.Same(t, first, cachedReg)
	})

	t.Run("reset rebuilds against the mutated environment", func(t *testing.T) {
		t.Setenv(agentFlagVar, "0")
		extensions.ResetCache()

		registry := extensions.Load(builtinDefs())
		agent, ok := registry.GetRoute("/panel/agent")
		require.True(t, ok)
		assert.False(t, agent.Enabled)

		_, err := registry.ResolveComponent(context.Background(), "/panel/agent")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "disabled"))

		t.Setenv(agentFlagVar, "1")
		extensions.ResetCache()

		registry = extensions.Load(builtinDefs())
		agent, ok = registry.GetRoute("/panel/agent")
		require.True(t, ok)
		assert.True(t, agent.Enabled)

		view, err := registry.ResolveComponent(context.Background(), "/panel/agent")
		require.NoError(t, err)
		assert.NotNil(t, view)
	})

	t.Run("no cache before first load", func(t *testing.T) {
		extensions.ResetCache()
		_, ok := extensions.Cached()
		assert.False(t, ok)
	})
}
