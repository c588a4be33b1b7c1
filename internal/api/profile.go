package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/sakif/devconnect/internal/model"
)

// ProfilePayload is the body of POST /profile. Skills travels as the
// comma-separated edit representation; the backend splits it server-side.
type ProfilePayload struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Skills   string `json:"skills"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	ImageURL string `json:"imageUrl"`
}

// MyProfile fetches the logged-in user's profile. A user who has not
// created one yet gets apperror.ErrNotFound.
func (c *Client) MyProfile(ctx context.Context) (*model.Profile, error) {
	var out model.Profile
	if err := c.do(ctx, http.MethodGet, "/profile/me", nil, &out); err != nil {
		return nil, fmt.Errorf("api: fetching profile: %w", err)
	}
	return &out, nil
}

// SaveProfile creates or replaces the logged-in user's profile and returns
// the server's stored version.
func (c *Client) SaveProfile(ctx context.Context, p ProfilePayload) (*model.Profile, error) {
	var out model.Profile
	if err := c.do(ctx, http.MethodPost, "/profile", p, &out); err != nil {
		return nil, fmt.Errorf("api: saving profile: %w", err)
	}
	return &out, nil
}

// UploadImage sends a profile image as multipart form data (field "image")
// and returns the URL the backend stored it under.
func (c *Client) UploadImage(ctx context.Context, filename string, image io.Reader) (string, error) {
	// The multipart body is built eagerly; profile images are small enough
	// that streaming through a pipe is not worth the extra failure modes.
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("api: building upload form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("api: reading image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("api: finalising upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/profile/upload", &body)
	if err != nil {
		return "", fmt.Errorf("api: building upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.send(req, &out); err != nil {
		return "", fmt.Errorf("api: uploading image: %w", err)
	}
	return out.ImageURL, nil
}

// SearchProfiles queries profiles by name and/or skill. Both filters are
// optional; empty filters return every profile.
func (c *Client) SearchProfiles(ctx context.Context, name, skill string) ([]model.Profile, error) {
	params := url.Values{}
	if name != "" {
		params.Set("name", name)
	}
	if skill != "" {
		params.Set("skill", skill)
	}
	path := "/profile/search"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out []model.Profile
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("api: searching profiles: %w", err)
	}
	return out, nil
}
