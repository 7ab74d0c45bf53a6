// Package access evaluates declarative authorization rules against session
// users.
//
// A Rule states what a route requires: specific roles, specific permissions,
// a login requirement, or an explicit guest allowance. Resolve turns a rule
// and the current user into a Decision carrying an allow/deny verdict and,
// on denial, a reason used by the navigation layer to pick a redirect target
// (login page vs. forbidden page).
//
// The evaluator is defensive by construction. Unknown role names and blank
// permission strings in a rule are silently dropped so a malformed rule can
// never lock everyone out, and a nil user is simply an unauthenticated guest.
// Denial is a returned value, never an error.
//
// Usage:
//
//	rule := &access.Rule{Roles: []access.Role{access.RoleAdmin}}
//	decision := access.Resolve(currentUser, rule)
//	if !decision.Allowed {
//		switch decision.Reason {
//		case access.ReasonUnauthenticated:
//			// redirect to login
//		case access.ReasonForbidden:
//			// redirect to the forbidden page
//		}
//	}
package access
