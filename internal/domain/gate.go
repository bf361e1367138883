package domain

// RoleAdmin marks a principal allowed to manage the shared workout catalog.
const RoleAdmin = "admin"

// Principal is the authenticated identity acting on a request. A nil
// Principal means the request is anonymous.
type Principal struct {
	ID    string
	Roles map[string]struct{}
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Roles[role]
	return ok
}

// Operation is the kind of action attempted on a resource.
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ResourceKind distinguishes the shared catalog from private per-owner records.
type ResourceKind string

const (
	KindCatalog  ResourceKind = "catalog"
	KindPersonal ResourceKind = "personal"
)

// Decision is the outcome of an authorization check.
type Decision string

const (
	// Allow permits the operation.
	Allow Decision = "allow"
	// DenyUnauthenticated rejects an operation that requires a principal.
	DenyUnauthenticated Decision = "deny_unauthenticated"
	// DenyForbidden rejects a role-gated operation. It is deliberately
	// distinguishable from not-found: no ownership ambiguity exists for
	// catalog records, so there is nothing to leak.
	DenyForbidden Decision = "deny_forbidden"
	// DenyNotFound rejects an ownership mismatch on a per-record lookup.
	// Callers must report it exactly like a missing record so that one
	// owner cannot probe for the existence of another owner's records.
	DenyNotFound Decision = "deny_not_found"
)

// Authorize decides whether the principal may perform op on a resource of the
// given kind. ownerID is the owner of the target record; it is empty for
// catalog resources and for owner-scoped list/create operations, where the
// result set or new record is bound to the principal itself.
//
// Authorize is a pure decision function: no store access, no side effects.
func Authorize(op Operation, kind ResourceKind, ownerID string, principal *Principal) Decision {
	switch kind {
	case KindCatalog:
		if op == OpRead {
			return Allow
		}
		if principal == nil {
			return DenyUnauthenticated
		}
		if !principal.HasRole(RoleAdmin) {
			return DenyForbidden
		}
		return Allow

	case KindPersonal:
		if principal == nil {
			return DenyUnauthenticated
		}
		if ownerID != "" && ownerID != principal.ID {
			return DenyNotFound
		}
		return Allow
	}

	return DenyForbidden
}
