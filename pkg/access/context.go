package access

import "context"

// userCtxKey is the context key for the current session user.
type userCtxKey struct{}

// WithUser stores the session user in the context. A nil user is stored as
// is and reads back as unauthenticated.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext retrieves the session user from the context. The boolean
// reports whether a user value was stored at all; the user itself may still
// be nil for unauthenticated callers.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*User)
	return user, ok
}
