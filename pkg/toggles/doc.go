// Package toggles resolves hierarchical feature toggles keyed by URL path.
//
// A toggle tree mirrors the application's URL space: each node corresponds to
// a path segment and carries an optional enabled state and release channel.
// Three sections partition the tree: globalNavigation for the public site,
// appModules for the authenticated dashboard, and cmsExperience for the CMS
// surfaces.
//
// Resolution is fail-open. A path with no matching configuration is enabled;
// toggles exist to switch experimental or gated surfaces off, not to
// allow-list stable ones. An explicitly disabled node disables its entire
// subtree regardless of what the children declare.
//
// Child keys support three match kinds, tried in priority order for each
// segment: an exact key, a dynamic key in bracket notation ("[slug]",
// "[...slug]") matching any single concrete segment, and the literal
// wildcard "*".
//
// Usage:
//
//	tree := toggles.Default()
//	if !tree.Enabled(toggles.SectionAppModules, "/cloud_iac/aws") {
//		// surface is gated off
//	}
//	enabled, channel := tree.Info(toggles.SectionGlobalNavigation, "/videos")
package toggles
