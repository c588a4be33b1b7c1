package view

import (
	"context"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/model"
)

// Admin is the moderation view: the full user and post lists plus the
// delete actions. The gate keeps non-admins out of this view entirely;
// the backend re-checks the admin flag on every call regardless.
type Admin struct {
	client *api.Client
	users  []model.User
	posts  []model.Post
}

func NewAdmin(client *api.Client) *Admin {
	return &Admin{client: client}
}

// LoadUsers replaces the cached user list.
func (v *Admin) LoadUsers(ctx context.Context) error {
	users, err := v.client.AdminListUsers(ctx)
	if err != nil {
		return err
	}
	v.users = users
	return nil
}

// LoadPosts replaces the cached post list.
func (v *Admin) LoadPosts(ctx context.Context) error {
	posts, err := v.client.AdminListPosts(ctx)
	if err != nil {
		return err
	}
	v.posts = posts
	return nil
}

// Users returns the cached user list.
func (v *Admin) Users() []model.User {
	return v.users
}

// Posts returns the cached post list.
func (v *Admin) Posts() []model.Post {
	return v.posts
}

// DeleteUser removes the user on the backend, then from the cache.
func (v *Admin) DeleteUser(ctx context.Context, userID string) error {
	if err := v.client.AdminDeleteUser(ctx, userID); err != nil {
		return err
	}
	kept := v.users[:0]
	for _, u := range v.users {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	v.users = kept
	return nil
}

// DeletePost removes any post on the backend, then from the cache.
func (v *Admin) DeletePost(ctx context.Context, postID string) error {
	if err := v.client.AdminDeletePost(ctx, postID); err != nil {
		return err
	}
	kept := v.posts[:0]
	for _, p := range v.posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	v.posts = kept
	return nil
}
