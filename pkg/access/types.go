package access

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the coarse authorization tier of a dashboard user.
type Role string

const (
	RoleGuest    Role = "guest"
	RoleUser     Role = "user"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// knownRoles lists every role the evaluator understands. Anything else found
// in a rule is dropped during normalization.
var knownRoles = map[Role]struct{}{
	RoleGuest:    {},
	RoleUser:     {},
	RoleOperator: {},
	RoleAdmin:    {},
}

// roleAliases maps upstream account-service role names onto the local set.
var roleAliases = map[string]Role{
	"admin":         RoleAdmin,
	"administrator": RoleAdmin,
	"operator":      RoleOperator,
	"ops":           RoleOperator,
	"user":          RoleUser,
	"member":        RoleUser,
}

// NormalizeRole maps an upstream role string onto a known Role. Unknown or
// empty input degrades to guest rather than failing, so a malformed session
// payload can never grant elevated access.
func NormalizeRole(input string) Role {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if role, ok := roleAliases[normalized]; ok {
		return role
	}
	return RoleGuest
}

// TenantMembership describes a user's membership in one tenant.
type TenantMembership struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role Role   `json:"role,omitempty"`
}

// User is the authenticated session identity as reported by the external
// session provider. This package only ever reads it; a nil *User means the
// caller is an unauthenticated guest, which is a valid state, not an error.
type User struct {
	ID          uuid.UUID          `json:"id"`
	Email       string             `json:"email"`
	Username    string             `json:"username,omitempty"`
	Name        string             `json:"name,omitempty"`
	Role        Role               `json:"role"`
	Groups      []string           `json:"groups,omitempty"`
	Permissions []string           `json:"permissions,omitempty"`
	TenantID    string             `json:"tenant_id,omitempty"`
	Tenants     []TenantMembership `json:"tenants,omitempty"`
	MFAEnabled  bool               `json:"mfa_enabled,omitempty"`
	MFAPending  bool               `json:"mfa_pending,omitempty"`
}

// EffectiveRole returns the user's role, degrading to guest for a nil user
// or an unset role field.
func (u *User) EffectiveRole() Role {
	if u == nil || u.Role == "" {
		return RoleGuest
	}
	return u.Role
}
