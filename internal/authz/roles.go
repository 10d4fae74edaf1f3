package authz

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleSchool  Role = "School"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

var ErrUnknownRole = errors.New("unknown role")

var allRoles = []Role{RoleAdmin, RoleSchool, RoleTeacher, RoleStudent}

// ParseRole accepts any casing ("teacher", "TEACHER", "Teacher").
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range allRoles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

// RequiresSchool reports whether logins for this role must carry a school identifier.
func (r Role) RequiresSchool() bool {
	return r == RoleSchool || r == RoleTeacher || r == RoleStudent
}

// Claim is the lowercased form carried in session tokens.
func (r Role) Claim() string {
	return strings.ToLower(string(r))
}

func (r Role) String() string { return string(r) }

func All() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}
