// Package guard implements the route-guard decision model. The decision
// core is pure: given the session state and the role state it yields
// Loading, Allowed or Denied, never touching the network. The middleware in
// this package wires the core into echo.
package guard

import "github.com/styleshoehub/storefront-gateway/internal/model"

// Decision is the outcome of a guard evaluation.
type Decision int

const (
	// Loading: session or role has not resolved yet; no allow/deny call
	// may be made. This is what prevents a flash of the wrong screen.
	Loading Decision = iota
	Allowed
	Denied
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Session is the guard's view of the session provider: whether the initial
// handshake finished and, if so, who is signed in.
type Session struct {
	Resolved bool
	Identity *model.Identity
}

// RoleState is the guard's view of the role resolver.
type RoleState struct {
	Resolved bool
	Role     model.Role
}

// Guard names one of the route guards. Private needs only a session; the
// role guards additionally require membership in their accepted set.
type Guard int

const (
	Private Guard = iota
	Admin
	Agent
	Customer
	AdminAgent
)

func (g Guard) String() string {
	switch g {
	case Private:
		return "private"
	case Admin:
		return "admin"
	case Agent:
		return "agent"
	case Customer:
		return "customer"
	case AdminAgent:
		return "admin_agent"
	}
	return "unknown"
}

// RequiresRole reports whether g consults the role resolver at all.
func (g Guard) RequiresRole() bool { return g != Private }

// Accepts reports whether a role satisfies the guard. The switch over the
// closed Role type is exhaustive: an unknown role satisfies nothing.
func (g Guard) Accepts(r model.Role) bool {
	switch g {
	case Private:
		return true
	case Admin:
		return r == model.RoleAdmin
	case Agent:
		return r == model.RoleAgent
	case Customer:
		return r == model.RoleCustomer
	case AdminAgent:
		return r == model.RoleAdmin || r == model.RoleAgent
	}
	return false
}

// Decide evaluates a guard. Precedence is fixed: while anything the guard
// depends on is still loading, the answer is Loading. Neither the
// protected content nor a redirect may be produced.
func Decide(sess Session, role RoleState, g Guard) Decision {
	if !sess.Resolved {
		return Loading
	}
	if sess.Identity == nil {
		return Denied
	}
	if !g.RequiresRole() {
		return Allowed
	}
	if !role.Resolved {
		return Loading
	}
	if g.Accepts(role.Role) {
		return Allowed
	}
	return Denied
}
