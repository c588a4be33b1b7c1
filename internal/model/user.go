// Package model defines the data structures shared between the API client,
// the session store, and the views.
//
// The JSON tags match the backend's wire shape exactly. The backend stores
// its documents in MongoDB, so identifiers arrive as "_id" and timestamps
// as "date" — the tags keep that boundary in one place instead of leaking
// Mongo naming into the rest of the code.
package model

// User is the account record returned by /auth/login and /auth/register
// alongside the token, and by the admin user list.
//
// IsAdmin gates the admin panel routes and commands. It is trusted as the
// backend sent it; the backend re-checks on every admin endpoint anyway.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}
