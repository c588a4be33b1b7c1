package model

// Social holds the optional external profile links. Empty string means the
// user has not set that link.
type Social struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Profile is a user's public profile. Skills is a sequence on the wire and
// in display; the comma-separated edit representation is a form concern
// (see internal/form), not part of the model.
//
// User is populated on search results (the backend embeds the owning user's
// name there); /profile/me flattens the owner's name into Name instead.
type Profile struct {
	ID       string   `json:"_id,omitempty"`
	User     *User    `json:"user,omitempty"`
	Name     string   `json:"name,omitempty"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
	Social   Social   `json:"social"`
	ImageURL string   `json:"imageUrl,omitempty"`
}
