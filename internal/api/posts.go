package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sakif/devconnect/internal/model"
)

type textRequest struct {
	Text string `json:"text"`
}

// ListPosts fetches the full feed, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var out []model.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &out); err != nil {
		return nil, fmt.Errorf("api: listing posts: %w", err)
	}
	return out, nil
}

// CreatePost publishes a new post and returns the server's stored copy.
func (c *Client) CreatePost(ctx context.Context, text string) (*model.Post, error) {
	var out model.Post
	if err := c.do(ctx, http.MethodPost, "/posts", textRequest{Text: text}, &out); err != nil {
		return nil, fmt.Errorf("api: creating post: %w", err)
	}
	return &out, nil
}

// LikePost records a like and returns the post's complete updated like
// set. Callers replace their local copy with it; the count is never
// computed client-side.
func (c *Client) LikePost(ctx context.Context, postID string) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodPut, "/posts/like/"+url.PathEscape(postID), nil, &out); err != nil {
		return nil, fmt.Errorf("api: liking post %s: %w", postID, err)
	}
	return out, nil
}

// UnlikePost removes a like; same contract as LikePost.
func (c *Client) UnlikePost(ctx context.Context, postID string) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodPut, "/posts/unlike/"+url.PathEscape(postID), nil, &out); err != nil {
		return nil, fmt.Errorf("api: unliking post %s: %w", postID, err)
	}
	return out, nil
}

// DeletePost removes one of the caller's own posts. The backend enforces
// ownership and answers non-2xx for anyone else's post.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	if err := c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(postID), nil, nil); err != nil {
		return fmt.Errorf("api: deleting post %s: %w", postID, err)
	}
	return nil
}

// AddComment attaches a comment to a post and returns the server's stored
// comment, which the caller prepends to the post's comment list.
func (c *Client) AddComment(ctx context.Context, postID, text string) (*model.Comment, error) {
	var out model.Comment
	if err := c.do(ctx, http.MethodPost, "/posts/comment/"+url.PathEscape(postID), textRequest{Text: text}, &out); err != nil {
		return nil, fmt.Errorf("api: commenting on post %s: %w", postID, err)
	}
	return &out, nil
}
