package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sakif/devconnect/internal/model"
)

// AuthResponse is the payload of both /auth/register and /auth/login: the
// opaque token plus the user record it belongs to.
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The confirm-password check is a client-side
// concern and is never sent over the wire.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, fmt.Errorf("api: registering: %w", err)
	}
	return &out, nil
}

// Login exchanges credentials for a token and user record. Writing the
// result into the session store is the login form's job, not the client's.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, fmt.Errorf("api: logging in: %w", err)
	}
	return &out, nil
}
