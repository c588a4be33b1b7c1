// Package stubserver is an in-memory stand-in for the DevConnect backend.
//
// The real backend is an external collaborator that owns all durable data;
// this stub implements the same REST surface so the client can be
// developed and integration-tested offline. It exists for fixtures and
// local development only — nothing here aims to be production server code.
package stubserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/devconnect/internal/model"
)

var (
	errNotFound   = errors.New("not found")
	errEmailTaken = errors.New("email already registered")
	errNotOwner   = errors.New("not the owner")
)

// user is the stub's account record; the password hash never leaves it.
type user struct {
	model.User
	PasswordHash string
}

// store holds all stub state behind one mutex. Scale is a non-goal: the
// store backs tests and a single local developer.
type store struct {
	mu       sync.Mutex
	users    map[string]*user          // by user ID
	byEmail  map[string]*user          // lowercase email -> user
	profiles map[string]*model.Profile // by owning user ID
	posts    []*model.Post             // newest first
}

func newStore() *store {
	return &store{
		users:    make(map[string]*user),
		byEmail:  make(map[string]*user),
		profiles: make(map[string]*model.Profile),
	}
}

func (s *store) createUser(name, email, passwordHash string, isAdmin bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.byEmail[key]; exists {
		return nil, errEmailTaken
	}

	u := &user{
		User: model.User{
			ID:      xid.New().String(),
			Name:    name,
			Email:   email,
			IsAdmin: isAdmin,
		},
		PasswordHash: passwordHash,
	}
	s.users[u.ID] = u
	s.byEmail[key] = u

	copied := u.User
	return &copied, nil
}

func (s *store) userByEmail(email string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, errNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *store) userByID(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errNotFound
	}
	copied := u.User
	return &copied, nil
}

func (s *store) listUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *store) deleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return errNotFound
	}
	delete(s.users, id)
	delete(s.byEmail, strings.ToLower(u.Email))
	delete(s.profiles, id)
	return nil
}

func (s *store) saveProfile(userID string, p model.Profile) *model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[userID]
	if !ok {
		p.ID = xid.New().String()
	} else {
		p.ID = existing.ID
	}
	s.profiles[userID] = &p

	copied := p
	return &copied
}

func (s *store) profileByUserID(userID string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, errNotFound
	}
	copied := *p
	return &copied, nil
}

// searchProfiles filters by case-insensitive substring on the owner's name
// and on any skill. Empty filters match everything.
func (s *store) searchProfiles(name, skill string) []model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.ToLower(strings.TrimSpace(name))
	skill = strings.ToLower(strings.TrimSpace(skill))

	out := make([]model.Profile, 0, len(s.profiles))
	for userID, p := range s.profiles {
		owner, ok := s.users[userID]
		if !ok {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(owner.Name), name) {
			continue
		}
		if skill != "" && !hasSkill(p.Skills, skill) {
			continue
		}
		copied := *p
		ownerCopy := owner.User
		copied.User = &ownerCopy
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func hasSkill(skills []string, want string) bool {
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s), want) {
			return true
		}
	}
	return false
}

func (s *store) createPost(author *model.User, text string) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := &model.Post{
		ID:       xid.New().String(),
		Text:     text,
		Name:     author.Name,
		Date:     time.Now().UTC(),
		Likes:    []string{},
		Comments: []model.Comment{},
	}
	s.posts = append([]*model.Post{post}, s.posts...)

	copied := *post
	return &copied
}

func (s *store) listPosts() []model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out
}

// like adds userID to the post's like set (idempotent) and returns the
// authoritative set — that set, not a count, is what the client patches in.
func (s *store) like(postID, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	if !post.HasLike(userID) {
		post.Likes = append(post.Likes, userID)
	}
	return append([]string{}, post.Likes...), nil
}

func (s *store) unlike(postID, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	kept := post.Likes[:0]
	for _, id := range post.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	post.Likes = kept
	return append([]string{}, post.Likes...), nil
}

// deletePost removes a post. Non-admins may only delete their own posts,
// matched by author name since the wire format carries no author ID.
func (s *store) deletePost(postID string, requester *model.User, adminOverride bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.posts {
		if p.ID != postID {
			continue
		}
		if !adminOverride && p.Name != requester.Name {
			return errNotOwner
		}
		s.posts = append(s.posts[:i], s.posts[i+1:]...)
		return nil
	}
	return errNotFound
}

func (s *store) addComment(postID string, author *model.User, text string) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	comment := model.Comment{
		ID:   xid.New().String(),
		Text: text,
		Name: author.Name,
		Date: time.Now().UTC(),
	}
	post.Comments = append([]model.Comment{comment}, post.Comments...)
	return &comment, nil
}

// findPost must be called with the mutex held.
func (s *store) findPost(postID string) (*model.Post, error) {
	for _, p := range s.posts {
		if p.ID == postID {
			return p, nil
		}
	}
	return nil, errNotFound
}
