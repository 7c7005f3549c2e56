// Package models defines the client-side data shapes: the logged-in identity
// and character records.
package models

// Identity is the single authenticated user record held by the session store.
type Identity struct {
	Username string `json:"username"`
}

// Valid reports whether the identity carries a username.
func (i Identity) Valid() bool {
	return i.Username != ""
}
