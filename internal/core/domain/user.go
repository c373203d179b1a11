package domain

// User represents the authenticated app user as seen by this layer. Identity
// is established by the surrounding shell; this layer only needs a stable id
// for ownership and permission checks.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}
