// Package featureflag resolves boolean feature flags from environment
// variables.
//
// A flag starts life as a static Definition attached to a dashboard extension
// or route. At registry construction time the definition is resolved once
// into a Flag carrying its concrete enabled state; the environment is never
// re-read afterwards, so a process sees a consistent flag set for its whole
// lifetime.
//
// Value parsing is deliberately permissive: operators write "1", "on",
// "enabled" or "true" interchangeably, and anything unrecognized falls back
// to the definition's default rather than failing the boot.
//
// Usage:
//
//	flag := featureflag.New(featureflag.Definition{
//		ID:             "agent-module",
//		Title:          "Agent module",
//		EnvVar:         "NEXT_PUBLIC_FEATURE_AGENT_MODULE",
//		DefaultEnabled: true,
//	})
//	if flag.Enabled {
//		// mount the agent routes
//	}
package featureflag
