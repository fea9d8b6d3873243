package access

// Identity is the requester of an operation. The zero value is anonymous.
type Identity struct {
	UserID   string
	Username string
}

// Anonymous is the identity of a request without a logged-in user
var Anonymous = Identity{}

// Authenticated reports whether the identity belongs to a logged-in user
func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// Owns reports whether the identity is the owner of r
func (id Identity) Owns(r Resource) bool {
	return id.Authenticated() && r != nil && r.OwnerID() == id.UserID
}
