package models

// Identity is the authenticated caller as asserted by the external identity
// provider's token. ID is the provider's stable subject; DisplayName and
// PhotoURL are snapshotted onto messages at post time and never re-synced.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}
