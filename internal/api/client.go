// Package api is the configured HTTP client for the DevConnect backend.
//
// The browser client rebuilt its auth headers in every component; here a
// single Client owns the base URL and a transport interceptor that injects
// the bearer credential from the session store, so call sites never touch
// credential plumbing:
//
//	view / form controller → Client method → bearerTransport → backend
//
// Error mapping happens in exactly one place (do): transport failures
// become apperror.ErrNetwork, 401 becomes apperror.ErrAuth, 404 becomes
// apperror.ErrNotFound, any other non-2xx becomes apperror.ErrServer.
// The client never retries and sets no timeout of its own — cancellation
// and deadlines belong to the caller's context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/session"
)

// Client talks to the DevConnect REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client for the backend at baseURL. Every request is sent
// through a transport that reads the current token from sessions — setting
// or clearing the session immediately affects subsequent requests.
func New(baseURL string, sessions session.Store, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &bearerTransport{
				base:     http.DefaultTransport,
				sessions: sessions,
			},
		},
		logger: logger,
	}
}

// bearerTransport injects "Authorization: Bearer <token>" when a session
// exists. Requests without a session go out unauthenticated; the backend
// answers 401 for protected endpoints and the error mapping takes over.
type bearerTransport struct {
	base     http.RoundTripper
	sessions session.Store
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if sess, ok, err := t.sessions.Get(); err == nil && ok && sess.Token != "" {
		// Clone before mutating: RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	return t.base.RoundTrip(req)
}

// do issues one request and decodes the JSON response into out (skipped
// when out is nil). body is JSON-encoded when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("api: building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send runs a fully built request (used directly by the multipart upload)
// and applies the error taxonomy to the response.
func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Network(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decoding response: %w", err)
		}
	}
	return nil
}

// errorFromResponse converts a non-2xx response into the matching
// taxonomy error, using the backend's message when it sent one.
func errorFromResponse(resp *http.Response) error {
	msg := serverMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperror.AuthFailed(msg)
	case http.StatusNotFound:
		return &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: orDefault(msg, "not found"),
			Status:  resp.StatusCode,
		}
	default:
		return apperror.Server(resp.StatusCode, msg)
	}
}

// serverMessage extracts a human-readable message from an error body.
// The backend is not consistent about its error shape, so all the shapes
// observed in the wild are tried before giving up.
func serverMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	for _, m := range []string{envelope.Message, envelope.Msg, envelope.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
