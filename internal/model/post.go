package model

import "time"

// Post is a feed entry. Likes is the set of user IDs who liked the post;
// the backend returns the full updated set from the like/unlike endpoints
// and the client always replaces, never recomputes, it.
type Post struct {
	ID       string    `json:"_id"`
	Text     string    `json:"text"`
	Name     string    `json:"name"` // author display name, denormalised by the backend
	Date     time.Time `json:"date"`
	Likes    []string  `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Comment is a single comment on a post. The backend prepends new comments,
// so Comments is ordered newest-first.
type Comment struct {
	ID   string    `json:"_id"`
	Text string    `json:"text"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// HasLike reports whether userID is in the post's like set.
func (p *Post) HasLike(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
