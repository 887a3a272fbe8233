package auth

import "strings"

// SuperAdminPermission grants every operation
const SuperAdminPermission = "*"

// HasPermission reports whether the granted capability set covers the
// required permission. Dot-separated permissions support wildcard grants:
// "invoice.*" covers "invoice.create", and "*" covers everything. Checks run
// from most to least specific.
func HasPermission(granted []string, required string) bool {
	for _, p := range granted {
		if p == required {
			return true
		}
	}
	for _, p := range granted {
		if matchesWildcard(p, required) {
			return true
		}
	}
	for _, p := range granted {
		if p == SuperAdminPermission {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether any of the required permissions is covered
func HasAnyPermission(granted []string, required ...string) bool {
	for _, r := range required {
		if HasPermission(granted, r) {
			return true
		}
	}
	return false
}

func matchesWildcard(grant, required string) bool {
	if !strings.HasSuffix(grant, ".*") {
		return false
	}
	prefix := strings.TrimSuffix(grant, "*")
	return strings.HasPrefix(required, prefix)
}

// HasPermission checks the claims' capability set against a required
// permission
func (c *Claims) HasPermission(required string) bool {
	return HasPermission(c.Permissions, required)
}
