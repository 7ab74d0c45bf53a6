package access

import "slices"

// Reason explains a denial so the caller can pick a redirect target.
type Reason string

const (
	// ReasonUnauthenticated means the caller must log in first.
	ReasonUnauthenticated Reason = "unauthenticated"
	// ReasonForbidden means the caller is known but not authorized.
	ReasonForbidden Reason = "forbidden"
)

// Rule is a declarative authorization requirement attached to a route.
// Unset pointer fields are derived from the rest of the rule, see Resolve.
type Rule struct {
	// RequireLogin forces authentication regardless of role restrictions.
	RequireLogin *bool `json:"require_login,omitempty"`

	// AllowGuests lets unauthenticated callers through even when the rule
	// would otherwise require login.
	AllowGuests *bool `json:"allow_guests,omitempty"`

	// Roles restricts access to the listed roles. Unknown role names are
	// dropped during normalization; an empty result means no restriction.
	Roles []Role `json:"roles,omitempty"`

	// Permissions lists permissions the user must all hold. Namespace
	// wildcards in the user's grants are honored ("billing.*").
	Permissions []string `json:"permissions,omitempty"`
}

// Decision is the outcome of evaluating a rule against a user. It is always
// a value: authorization denial is a decision, never an error.
type Decision struct {
	Allowed  bool               `json:"allowed"`
	Reason   Reason             `json:"reason,omitempty"`
	Role     Role               `json:"role"`
	TenantID string             `json:"tenant_id,omitempty"`
	Tenants  []TenantMembership `json:"tenants,omitempty"`
}

// Bool is a convenience for rule literals with explicit tri-state fields.
func Bool(v bool) *bool { return &v }

// NormalizeRoles drops unknown roles and duplicates, preserving first-seen
// order. Returns nil when the restriction is empty after normalization.
func NormalizeRoles(roles []Role) []Role {
	if len(roles) == 0 {
		return nil
	}

	result := make([]Role, 0, len(roles))
	for _, role := range roles {
		if _, ok := knownRoles[role]; !ok {
			continue
		}
		if slices.Contains(result, role) {
			continue
		}
		result = append(result, role)
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// Resolve evaluates a rule against the current user and produces a decision.
// A nil rule means no restriction; a nil user is an unauthenticated guest.
//
// Unset rule fields are derived: guests are allowed unless a role restriction
// excludes them, and login is required when guests are not allowed, when
// permissions are demanded, or when a role restriction excludes guests.
// Identity is checked before authorization: an unauthenticated caller failing
// the login requirement is rejected before any role or permission check, and
// role checks run before permission checks.
func Resolve(user *User, rule *Rule) Decision {
	if rule == nil {
		rule = &Rule{}
	}

	roles := NormalizeRoles(rule.Roles)
	permissions := NormalizePermissions(rule.Permissions)

	role := user.EffectiveRole()
	authenticated := user != nil

	allowGuests := roles == nil || slices.Contains(roles, RoleGuest)
	if rule.AllowGuests != nil {
		allowGuests = *rule.AllowGuests
	}

	requiresLogin := !allowGuests || permissions != nil ||
		(roles != nil && !slices.Contains(roles, RoleGuest))
	if rule.RequireLogin != nil {
		requiresLogin = *rule.RequireLogin
	}

	if !authenticated && requiresLogin && !allowGuests {
		return Decision{Reason: ReasonUnauthenticated, Role: role}
	}

	if roles != nil && !slices.Contains(roles, role) {
		return Decision{Reason: denialReason(authenticated), Role: role}
	}

	if permissions != nil {
		var granted []string
		if user != nil {
			granted = user.Permissions
		}
		if !HasAllPermissions(granted, permissions) {
			return Decision{Reason: denialReason(authenticated), Role: role}
		}
	}

	decision := Decision{Allowed: true, Role: role}
	if user != nil {
		decision.TenantID = user.TenantID
		decision.Tenants = user.Tenants
	}
	return decision
}

func denialReason(authenticated bool) Reason {
	if authenticated {
		return ReasonForbidden
	}
	return ReasonUnauthenticated
}
