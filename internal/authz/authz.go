// Package authz maps requester roles onto authorization predicates.
// The role set is closed: anything outside it is denied.
package authz

// Role identifies the kind of principal making a request.
type Role string

const (
	// RoleUser is a regular account holder. Users may only act on their
	// own account.
	RoleUser Role = "user"
	// RoleAdmin is an administrative principal allowed to act on any
	// account.
	RoleAdmin Role = "admin"
	// RoleSystem is reserved for internal actors (the deletion reaper).
	// It never arrives via the HTTP surface.
	RoleSystem Role = "system"
)

// Principal is an authenticated requester identity, as established by the
// JWT middleware (or constructed internally for system actors).
type Principal struct {
	UserID string
	Role   Role
}

// SystemPrincipal is the identity used for internally-initiated operations.
func SystemPrincipal() Principal {
	return Principal{UserID: "system", Role: RoleSystem}
}

// predicate reports whether a principal may delete the given account.
type predicate func(p Principal, accountID string) bool

var deletePredicates = map[Role]predicate{
	RoleUser:   func(p Principal, accountID string) bool { return p.UserID == accountID },
	RoleAdmin:  func(Principal, string) bool { return true },
	RoleSystem: func(Principal, string) bool { return true },
}

// RoleAuthorizer authorizes operations based on the closed role set above.
type RoleAuthorizer struct{}

func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{}
}

// CanDelete reports whether p may delete accountID. Unknown roles are
// always denied.
func (*RoleAuthorizer) CanDelete(p Principal, accountID string) bool {
	pred, ok := deletePredicates[p.Role]
	if !ok {
		return false
	}
	return pred(p, accountID)
}

// CanView reports whether p may read accountID's data. Same rule as
// deletion: owner or administrative principal.
func (a *RoleAuthorizer) CanView(p Principal, accountID string) bool {
	return a.CanDelete(p, accountID)
}
