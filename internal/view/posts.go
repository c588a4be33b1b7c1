// Package view holds the client's cached copies of server-owned
// collections and patches them from the backend's responses.
//
// The pattern is deliberately pessimistic: no mutation is applied locally
// until the backend confirms it, and the patch always uses the server's
// returned payload (the full like set, the stored post, the stored
// comment) rather than a locally recomputed value. On failure the cached
// collection is untouched — there is nothing to roll back.
//
// Views are event-driven and single-goroutine like the rest of the client;
// they are not safe for concurrent use.
package view

import (
	"context"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/model"
)

// Posts is the feed view: the cached post list plus the mutations the feed
// offers. The backend returns posts newest-first and the cache preserves
// that order, prepending newly created entries.
type Posts struct {
	client  *api.Client
	posts   []model.Post
	loading bool
}

func NewPosts(client *api.Client) *Posts {
	return &Posts{client: client}
}

// Load replaces the cache with the server's current feed.
func (v *Posts) Load(ctx context.Context) error {
	v.loading = true
	defer func() { v.loading = false }()

	posts, err := v.client.ListPosts(ctx)
	if err != nil {
		return err
	}
	v.posts = posts
	return nil
}

// Posts returns the cached feed. Callers must not mutate the elements.
func (v *Posts) Posts() []model.Post {
	return v.posts
}

// Loading reports whether a fetch or mutation is in flight.
func (v *Posts) Loading() bool {
	return v.loading
}

// Create publishes text and prepends the server's stored post.
func (v *Posts) Create(ctx context.Context, text string) error {
	post, err := v.client.CreatePost(ctx, text)
	if err != nil {
		return err
	}
	v.posts = append([]model.Post{*post}, v.posts...)
	return nil
}

// Like records a like on postID and replaces that post's like set with the
// server's authoritative copy. Every other post is untouched.
func (v *Posts) Like(ctx context.Context, postID string) error {
	likes, err := v.client.LikePost(ctx, postID)
	if err != nil {
		return err
	}
	v.patchLikes(postID, likes)
	return nil
}

// Unlike removes a like; same patch contract as Like.
func (v *Posts) Unlike(ctx context.Context, postID string) error {
	likes, err := v.client.UnlikePost(ctx, postID)
	if err != nil {
		return err
	}
	v.patchLikes(postID, likes)
	return nil
}

// Delete removes the caller's post from the backend, then from the cache.
func (v *Posts) Delete(ctx context.Context, postID string) error {
	if err := v.client.DeletePost(ctx, postID); err != nil {
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

// Comment adds a comment to postID and prepends the server's stored
// comment to that post's list.
func (v *Posts) Comment(ctx context.Context, postID, text string) error {
	comment, err := v.client.AddComment(ctx, postID, text)
	if err != nil {
		return err
	}
	for i := range v.posts {
		if v.posts[i].ID == postID {
			v.posts[i].Comments = append([]model.Comment{*comment}, v.posts[i].Comments...)
			return nil
		}
	}
	return nil
}

func (v *Posts) patchLikes(postID string, likes []string) {
	for i := range v.posts {
		if v.posts[i].ID == postID {
			v.posts[i].Likes = likes
			return
		}
	}
}
