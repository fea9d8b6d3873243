// Package access decides whether an identity may perform an operation on a
// resource.
//
// Every entity-scoped operation goes through Authorize. The policy has
// exactly three outcomes: nil (permitted), ErrUnauthenticated (the caller
// must log in first) and ErrNotFound. A resource that exists but belongs to
// someone else yields ErrNotFound, the same value as a resource that does not
// exist, so callers cannot leak a distinguishing status.
package access
