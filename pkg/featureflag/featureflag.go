package featureflag

import (
	"os"
	"strings"
)

// Definition describes a feature flag before it is resolved against the
// environment. Definitions are static data attached to extensions and routes.
type Definition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// EnvVar names the environment variable that overrides DefaultEnabled.
	// An empty EnvVar means the flag always resolves to DefaultEnabled.
	EnvVar string `json:"env_var,omitempty"`

	// DefaultEnabled is the resolved state when the variable is unset or
	// holds an unrecognized value.
	DefaultEnabled bool `json:"default_enabled"`
}

// Flag is a Definition resolved to a concrete enabled state. Resolution
// happens once at creation; a Flag never re-reads the environment.
type Flag struct {
	Definition
	Enabled bool `json:"enabled"`
}

// LookupFunc retrieves the raw value of an environment variable.
// It mirrors os.Getenv: a missing variable is reported as "".
type LookupFunc func(key string) string

var (
	truthyValues = map[string]struct{}{
		"1": {}, "true": {}, "yes": {}, "on": {}, "enable": {}, "enabled": {},
	}
	falsyValues = map[string]struct{}{
		"0": {}, "false": {}, "no": {}, "off": {}, "disable": {}, "disabled": {},
	}
)

// ParseValue interprets a raw environment value as a boolean flag state.
// Recognized truthy values: 1, true, yes, on, enable, enabled.
// Recognized falsy values: 0, false, no, off, disable, disabled.
// Matching is case-insensitive and ignores surrounding whitespace; empty or
// unrecognized input yields fallback.
func ParseValue(value string, fallback bool) bool {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return fallback
	}
	if _, ok := truthyValues[normalized]; ok {
		return true
	}
	if _, ok := falsyValues[normalized]; ok {
		return false
	}
	return fallback
}

// New resolves a definition against the process environment.
func New(def Definition) Flag {
	return NewInEnv(def, os.Getenv)
}

// NewInEnv resolves a definition using the provided lookup function.
// It exists so registries and tests can resolve flags against a snapshot
// instead of mutating the process environment.
func NewInEnv(def Definition, lookup LookupFunc) Flag {
	enabled := def.DefaultEnabled
	if def.EnvVar != "" && lookup != nil {
		enabled = ParseValue(lookup(def.EnvVar), def.DefaultEnabled)
	}
	return Flag{Definition: def, Enabled: enabled}
}

// IsEnabled reports the resolved state of a definition without keeping the
// intermediate Flag around.
func IsEnabled(def Definition) bool {
	return New(def).Enabled
}
