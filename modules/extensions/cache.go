package extensions

import "sync"

// The process-wide registry is built once and cached: feature flags read the
// environment at construction time, so rebuilding on every lookup would let
// a mid-flight env change split the navigation surface. Tests that mutate
// flag variables call ResetCache to force a rebuild.
var (
	cacheMu sync.Mutex
	cached  *Registry
)

// Load returns the process-wide registry, building it from defs on first
// call. Later calls return the cached registry and ignore their arguments.
// Use New directly when independent registries are needed in one process.
func Load(defs []Extension, opts ...Option) *Registry {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached == nil {
		cached = New(defs, opts...)
	}
	return cached
}

// Cached returns the process-wide registry if one has been built.
func Cached() (*Registry, bool) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	return cached, cached != nil
}

// ResetCache drops the process-wide registry so the next Load rebuilds it.
// This is a test hook for exercising feature-flag environment changes.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cached = nil
}
