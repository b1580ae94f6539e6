package auth

import "github.com/eventengine/eventengine/internal/model"

// IsAdmin reports whether verified claims carry the admin role.
// Authenticated-only endpoints need just a successful Verify; node
// management additionally requires this check.
func IsAdmin(c Claims) bool {
	return c.Role == model.RoleAdmin
}
