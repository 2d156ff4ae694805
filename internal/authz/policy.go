// Package authz holds the authorization policy for the helpdesk. Every rule
// is a pure function over the acting user's role and resource ownership, so
// the policy is testable without any HTTP or database context.
package authz

import "fmt"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleAgent    Role = "agent"
)

// DefaultRole is assigned when a create call does not set one explicitly.
const DefaultRole = RoleEmployee

// ParseRole validates a raw role string against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleAgent:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// CanManageArticles reports whether the role may create, update or delete
// knowledge-base articles. Reading articles is open to every authenticated
// user and needs no check here.
func CanManageArticles(role Role) bool {
	return role == RoleAdmin
}

// CanCreateTicket reports whether the role may open a ticket. Any
// authenticated role may; the creator is always taken from the request
// context, never from the payload.
func CanCreateTicket(role Role) bool {
	return role.Valid()
}

// CanModifyTicket implements the ownership-or-admin rule for ticket update
// and delete. Being the assignee grants nothing.
func CanModifyTicket(role Role, requesterID, creatorID int64) bool {
	if !role.Valid() || requesterID == 0 {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	return requesterID == creatorID
}

// CanRegisterUsers reports whether the role may create new user accounts
// (including accounts with elevated roles).
func CanRegisterUsers(role Role) bool {
	return role == RoleAdmin
}

// ScopeKind narrows ticket list and read queries by role.
type ScopeKind int

const (
	// ScopeNone yields no rows. Used for unauthenticated principals; it is
	// an empty result, not an error.
	ScopeNone ScopeKind = iota
	// ScopeCreator restricts to tickets created by the user.
	ScopeCreator
	// ScopeAssignee restricts to tickets assigned to the user.
	ScopeAssignee
	// ScopeAll applies no filter.
	ScopeAll
)

// TicketScope describes the row-level filter a role sees on ticket listings.
type TicketScope struct {
	Kind   ScopeKind
	UserID int64
}

// TicketScopeFor returns the list filter for the given principal:
// employees see tickets they created, agents see tickets assigned to them,
// admins see everything.
func TicketScopeFor(role Role, userID int64) TicketScope {
	if userID == 0 || !role.Valid() {
		return TicketScope{Kind: ScopeNone}
	}

	switch role {
	case RoleEmployee:
		return TicketScope{Kind: ScopeCreator, UserID: userID}
	case RoleAgent:
		return TicketScope{Kind: ScopeAssignee, UserID: userID}
	case RoleAdmin:
		return TicketScope{Kind: ScopeAll}
	}
	return TicketScope{Kind: ScopeNone}
}

// Allows reports whether a ticket with the given creator and assignee is
// visible under the scope.
func (s TicketScope) Allows(creatorID int64, assigneeID *int64) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeCreator:
		return creatorID == s.UserID
	case ScopeAssignee:
		return assigneeID != nil && *assigneeID == s.UserID
	}
	return false
}
