package extensions

import "errors"

var (
	// ErrRouteNotFound is returned when no route is registered for a path.
	// Callers are expected to only resolve paths they know are registered,
	// so hitting this usually means a configuration error.
	ErrRouteNotFound = errors.New("extensions: no route registered for path")

	// ErrRouteDisabled is returned when a registered route is switched off
	// by its own or its extension's feature flag. The message keeps the
	// literal "disabled" for callers still matching on error text.
	ErrRouteDisabled = errors.New("extensions: route is disabled")

	// ErrNoLoader is returned when a registered route declares no loader.
	ErrNoLoader = errors.New("extensions: route has no loader")
)
