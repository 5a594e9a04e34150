package model

// Role is the closed set of dashboard roles. The backend may answer with
// arbitrary strings; ParseRole is the only door in, and anything outside
// the set is rejected rather than carried as a free-form value.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
	RoleCustomer Role = "customer"
)

// ParseRole maps a backend role string onto the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleAgent, RoleCustomer:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// Valid reports membership in the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleCustomer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
