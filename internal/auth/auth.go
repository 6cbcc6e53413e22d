// Package auth provides role-based access control for the HTTP surface.
//
// Requests authenticate with HTTP Basic credentials resolved against a
// Source. Authorization is decided by a Policy: an ordered rule table
// matched first-to-last against the request method and path. Roles form a
// simple hierarchy in which ADMIN satisfies every USER requirement.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

// Role identifies an access level granted to an account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var ErrUnknownRole = errors.New("unknown role")

var roleRank = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

// ParseRole converts a configured role name into a Role. Matching is
// case-insensitive.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := roleRank[role]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRole, value)
	}
	return role, nil
}

// Satisfies reports whether the role meets or exceeds the required role.
func (r Role) Satisfies(required Role) bool {
	return roleRank[r] >= roleRank[required]
}
