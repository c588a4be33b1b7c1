package stubserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/stubserver"
)

const adminEmail = "root@example.com"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend, err := stubserver.New(stubserver.Config{
		JWTSecret:    "test-secret-at-least-16-chars!!",
		AdminEmail:   adminEmail,
		PasswordCost: bcrypt.MinCost,
	}, logger)
	require.NoError(t, err)

	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	return srv
}

// call sends a JSON request with an optional bearer token and decodes the
// response body into out when out is non-nil.
func call(t *testing.T, srv *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func register(t *testing.T, srv *httptest.Server, name, email string) api.AuthResponse {
	t.Helper()
	var resp api.AuthResponse
	status := call(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "Abcdef1!",
	}, &resp)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	srv := newServer(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/posts"},
		{http.MethodGet, "/profile/me"},
		{http.MethodGet, "/profile/search"},
		{http.MethodPost, "/posts"},
		{http.MethodGet, "/admin/users"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status := call(t, srv, tc.method, tc.path, "", nil, nil)
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	srv := newServer(t)
	status := call(t, srv, http.MethodGet, "/posts", "not.a.token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterValidation(t *testing.T) {
	srv := newServer(t)

	// Missing fields.
	status := call(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "ada@example.com",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Duplicate email.
	register(t, srv, "Ada", "ada@example.com")
	var errResp stubserver.ErrorResponse
	status = call(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Imposter",
		"email":    "ada@example.com",
		"password": "Abcdef1!",
	}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already exists", errResp.Message)
}

func TestAdminFlagComesFromConfiguredEmail(t *testing.T) {
	srv := newServer(t)

	member := register(t, srv, "Ada", "ada@example.com")
	assert.False(t, member.User.IsAdmin)

	admin := register(t, srv, "Root", adminEmail)
	assert.True(t, admin.User.IsAdmin)
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	srv := newServer(t)
	member := register(t, srv, "Ada", "ada@example.com")

	status := call(t, srv, http.MethodGet, "/admin/users", member.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = call(t, srv, http.MethodGet, "/admin/posts", member.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestLoginDoesNotLeakWhichCredentialWasWrong(t *testing.T) {
	srv := newServer(t)
	register(t, srv, "Ada", "ada@example.com")

	var unknownUser, wrongPassword stubserver.ErrorResponse
	status := call(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "Abcdef1!",
	}, &unknownUser)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = call(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "Wrongpw1!",
	}, &wrongPassword)
	assert.Equal(t, http.StatusUnauthorized, status)

	assert.Equal(t, unknownUser.Message, wrongPassword.Message)
}

func TestPostOwnershipEnforcement(t *testing.T) {
	srv := newServer(t)
	ada := register(t, srv, "Ada", "ada@example.com")
	brendan := register(t, srv, "Brendan", "brendan@example.com")

	var post struct {
		ID string `json:"_id"`
	}
	status := call(t, srv, http.MethodPost, "/posts", ada.Token, map[string]string{"text": "mine"}, &post)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, post.ID)

	status = call(t, srv, http.MethodDelete, "/posts/"+post.ID, brendan.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = call(t, srv, http.MethodDelete, "/posts/"+post.ID, ada.Token, nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminMayDeleteAnyPost(t *testing.T) {
	srv := newServer(t)
	ada := register(t, srv, "Ada", "ada@example.com")
	admin := register(t, srv, "Root", adminEmail)

	var post struct {
		ID string `json:"_id"`
	}
	status := call(t, srv, http.MethodPost, "/posts", ada.Token, map[string]string{"text": "mine"}, &post)
	require.Equal(t, http.StatusCreated, status)

	status = call(t, srv, http.MethodDelete, "/admin/post/"+post.ID, admin.Token, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	var posts []json.RawMessage
	status = call(t, srv, http.MethodGet, "/posts", ada.Token, nil, &posts)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, posts)
}

func TestLikeEndpointsReturnTheLikeSet(t *testing.T) {
	srv := newServer(t)
	ada := register(t, srv, "Ada", "ada@example.com")
	brendan := register(t, srv, "Brendan", "brendan@example.com")

	var post struct {
		ID string `json:"_id"`
	}
	status := call(t, srv, http.MethodPost, "/posts", ada.Token, map[string]string{"text": "likeable"}, &post)
	require.Equal(t, http.StatusCreated, status)

	var likes []string
	status = call(t, srv, http.MethodPut, fmt.Sprintf("/posts/like/%s", post.ID), ada.Token, nil, &likes)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{ada.User.ID}, likes)

	status = call(t, srv, http.MethodPut, fmt.Sprintf("/posts/like/%s", post.ID), brendan.Token, nil, &likes)
	require.Equal(t, http.StatusOK, status)
	assert.ElementsMatch(t, []string{ada.User.ID, brendan.User.ID}, likes)

	status = call(t, srv, http.MethodPut, fmt.Sprintf("/posts/unlike/%s", post.ID), ada.Token, nil, &likes)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{brendan.User.ID}, likes)
}

func TestMissingProfileIs404(t *testing.T) {
	srv := newServer(t)
	ada := register(t, srv, "Ada", "ada@example.com")

	status := call(t, srv, http.MethodGet, "/profile/me", ada.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnknownPostIs404(t *testing.T) {
	srv := newServer(t)
	ada := register(t, srv, "Ada", "ada@example.com")

	status := call(t, srv, http.MethodPut, "/posts/like/doesnotexist", ada.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = call(t, srv, http.MethodPost, "/posts/comment/doesnotexist", ada.Token, map[string]string{"text": "hi"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
