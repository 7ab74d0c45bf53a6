package access

import (
	"slices"
	"strings"
)

const (
	// permissionWildcard matches every permission on its own and, as a
	// suffix ("billing.*"), everything inside a namespace.
	permissionWildcard = "*"

	// permissionDelimiter separates namespace parts, e.g. "billing.read".
	permissionDelimiter = "."
)

// NormalizePermissions trims whitespace, drops empty entries and removes
// duplicates while preserving first-seen order. Returns nil when nothing
// usable remains, which the evaluator treats as "no permission restriction".
func NormalizePermissions(permissions []string) []string {
	if len(permissions) == 0 {
		return nil
	}

	result := make([]string, 0, len(permissions))
	for _, permission := range permissions {
		permission = strings.TrimSpace(permission)
		if permission == "" || slices.Contains(result, permission) {
			continue
		}
		result = append(result, permission)
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// PermissionMatches reports whether a granted pattern satisfies a required
// permission. A pattern matches directly, via the global wildcard, or via a
// namespace wildcard suffix ("billing.*" grants "billing.read").
func PermissionMatches(required, pattern string) bool {
	if required == pattern || pattern == permissionWildcard {
		return true
	}

	if strings.HasSuffix(pattern, permissionWildcard) {
		prefix := strings.TrimSuffix(pattern, permissionWildcard)
		prefix = strings.TrimSuffix(prefix, permissionDelimiter)
		return strings.HasPrefix(required, prefix+permissionDelimiter)
	}

	return false
}

// HasPermission reports whether any granted permission satisfies required.
func HasPermission(granted []string, required string) bool {
	for _, pattern := range granted {
		if PermissionMatches(required, pattern) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the granted set satisfies every required
// permission. An empty required set is always satisfied.
func HasAllPermissions(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if slices.Contains(granted, permissionWildcard) {
		return true
	}
	for _, permission := range required {
		if !HasPermission(granted, permission) {
			return false
		}
	}
	return true
}
