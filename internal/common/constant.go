// Package common contains shared constants and small helpers used across
// animedex components.
package common

const (
	// IdentityStorageKey is the local storage key holding the JSON-serialized
	// logged-in identity.
	IdentityStorageKey = "animeApp_user"

	// LastLoginStorageKey holds the RFC 3339 timestamp of the last successful login.
	LastLoginStorageKey = "animeApp_last_login"
)
