package access

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means the operation needs a logged-in user
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotFound means the resource is absent or not visible to the requester
	ErrNotFound = errors.New("not found")
)

// Operation is an action on a resource
type Operation int

const (
	View Operation = iota
	Create
	Edit
	Delete
)

func (op Operation) String() string {
	switch op {
	case View:
		return "view"
	case Create:
		return "create"
	case Edit:
		return "edit"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

// Resource is an entity subject to the policy.
type Resource interface {
	// OwnerID returns the author's user id, or "" for unowned resources.
	OwnerID() string
	// Private reports whether only the owner may view the resource.
	Private() bool
}

// Authorize returns nil when id may perform op on r.
//
// For Create, r is the parent resource (or nil). For View, Edit and Delete a
// nil r means the resource does not exist. For Edit and Delete,
// authentication is checked before existence, so anonymous requests for
// missing resources still get ErrUnauthenticated.
func Authorize(op Operation, r Resource, id Identity) error {
	switch op {
	case View:
		if r == nil {
			return ErrNotFound
		}
		if !r.Private() {
			return nil
		}
		if !id.Authenticated() {
			return ErrUnauthenticated
		}
		if !id.Owns(r) {
			return ErrNotFound
		}
		return nil

	case Create:
		if !id.Authenticated() {
			return ErrUnauthenticated
		}
		return nil

	case Edit, Delete:
		if !id.Authenticated() {
			return ErrUnauthenticated
		}
		if r == nil || !id.Owns(r) {
			return ErrNotFound
		}
		return nil
	}

	return fmt.Errorf("unknown %s", op)
}

// CanPerform reports whether Authorize permits the operation
func CanPerform(op Operation, r Resource, id Identity) bool {
	return Authorize(op, r, id) == nil
}

// RequireLogin is the guard for pages that are not tied to one resource
// (note list, add form, success page).
func RequireLogin(id Identity) error {
	return Authorize(Create, nil, id)
}
