package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sakif/devconnect/internal/model"
)

// Admin endpoints. The backend checks the admin flag on every call; the
// client's gate only hides the UI, it is not the security boundary.

// AdminListUsers returns every registered user.
func (c *Client) AdminListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, fmt.Errorf("api: listing users: %w", err)
	}
	return out, nil
}

// AdminListPosts returns every post regardless of author.
func (c *Client) AdminListPosts(ctx context.Context) ([]model.Post, error) {
	var out []model.Post
	if err := c.do(ctx, http.MethodGet, "/admin/posts", nil, &out); err != nil {
		return nil, fmt.Errorf("api: listing all posts: %w", err)
	}
	return out, nil
}

// AdminDeleteUser removes a user account.
func (c *Client) AdminDeleteUser(ctx context.Context, userID string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/user/"+url.PathEscape(userID), nil, nil); err != nil {
		return fmt.Errorf("api: deleting user %s: %w", userID, err)
	}
	return nil
}

// AdminDeletePost removes any post.
func (c *Client) AdminDeletePost(ctx context.Context, postID string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/post/"+url.PathEscape(postID), nil, nil); err != nil {
		return fmt.Errorf("api: deleting post %s: %w", postID, err)
	}
	return nil
}
