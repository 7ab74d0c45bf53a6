package toggles

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Section identifies one of the top-level toggle trees.
type Section string

const (
	// SectionGlobalNavigation gates the public marketing navigation.
	SectionGlobalNavigation Section = "globalNavigation"
	// SectionAppModules gates the authenticated dashboard modules.
	SectionAppModules Section = "appModules"
	// SectionCMSExperience gates the markdown CMS surfaces.
	SectionCMSExperience Section = "cmsExperience"
)

// Channel is the release channel a toggle node is published on.
type Channel string

const (
	ChannelStable  Channel = "stable"
	ChannelBeta    Channel = "beta"
	ChannelDevelop Channel = "develop"
)

// Node is a single entry in a toggle tree. Child keys are URL path segments;
// a key like "[slug]" or "[...slug]" matches any concrete segment, and "*" is
// a literal wildcard.
type Node struct {
	// Enabled defaults to true when omitted. Toggles are opt-out: absence of
	// configuration means the surface is reachable.
	Enabled  *bool            `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Channel  Channel          `json:"channel,omitempty" yaml:"channel,omitempty"`
	Children map[string]*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsEnabled reports whether the node itself is enabled. A nil node or an
// unset Enabled field counts as enabled.
func (n *Node) IsEnabled() bool {
	return n == nil || n.Enabled == nil || *n.Enabled
}

// Tree maps sections to their toggle roots. A section missing from the tree
// resolves every path to enabled.
type Tree map[Section]*Node

// Result is the outcome of resolving a path against a section tree. Node is
// the deepest node reached, when one exists.
type Result struct {
	Enabled bool
	Node    *Node
}

var dynamicSegmentPattern = regexp.MustCompile(`^\[(\.\.\.)?.+\]$`)

// Resolve walks the section's tree along the normalized path segments.
// An explicitly disabled node short-circuits: everything beneath it is
// disabled regardless of the children's own settings. Path segments with no
// matching child are treated as leaves under the last matched node.
func (t Tree) Resolve(section Section, pathname string) Result {
	root, ok := t[section]
	if !ok {
		return Result{Enabled: true}
	}
	return resolveNode(root, splitSegments(pathname))
}

// Enabled reports whether the given path is enabled within a section.
func (t Tree) Enabled(section Section, pathname string) bool {
	return t.Resolve(section, pathname).Enabled
}

// Info resolves a path and surfaces the matched node's release channel.
func (t Tree) Info(section Section, pathname string) (bool, Channel) {
	result := t.Resolve(section, pathname)
	if result.Node == nil {
		return result.Enabled, ""
	}
	return result.Enabled, result.Node.Channel
}

func resolveNode(node *Node, segments []string) Result {
	if node == nil {
		return Result{Enabled: true}
	}
	if !node.IsEnabled() {
		return Result{Enabled: false, Node: node}
	}
	if len(segments) == 0 {
		return Result{Enabled: true, Node: node}
	}

	next := matchChild(node.Children, segments[0])
	if next == nil {
		return Result{Enabled: true, Node: node}
	}
	return resolveNode(next, segments[1:])
}

// matchChild selects the next node for a segment by priority: exact key,
// then a dynamic "[...]"-style key, then the literal wildcard "*". With
// several dynamic siblings the lexicographically smallest key wins, keeping
// resolution deterministic.
func matchChild(children map[string]*Node, segment string) *Node {
	if child := children[segment]; child != nil {
		return child
	}
	for _, key := range slices.Sorted(maps.Keys(children)) {
		if dynamicSegmentPattern.MatchString(key) && children[key] != nil {
			return children[key]
		}
	}
	return children["*"]
}

func splitSegments(pathname string) []string {
	parts := strings.Split(strings.Trim(pathname, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
