package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/session"
	"github.com/sakif/devconnect/internal/stubserver"
)

// testEnv is one client wired to a fresh stub backend. Registrations with
// adminEmail become admin accounts.
const adminEmail = "root@example.com"

func newTestEnv(t *testing.T) (*api.Client, session.Store) {
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

	sessions := session.NewMemory()
	return api.New(srv.URL, sessions, logger), sessions
}

// loginAs registers a user and stores the resulting session, the way the
// login form would.
func loginAs(t *testing.T, client *api.Client, sessions session.Store, name, email string) {
	t.Helper()
	resp, err := client.Register(context.Background(), name, email, "Abcdef1!")
	require.NoError(t, err)
	require.NoError(t, sessions.Set(resp.Token, resp.User))
}

func TestRegisterAndLogin(t *testing.T) {
	client, _ := newTestEnv(t)
	ctx := context.Background()

	reg, err := client.Register(ctx, "Ada", "ada@example.com", "Abcdef1!")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "Ada", reg.User.Name)
	assert.False(t, reg.User.IsAdmin)

	login, err := client.Login(ctx, "ada@example.com", "Abcdef1!")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client, _ := newTestEnv(t)
	ctx := context.Background()

	_, err := client.Register(ctx, "Ada", "ada@example.com", "Abcdef1!")
	require.NoError(t, err)

	_, err = client.Login(ctx, "ada@example.com", "Wrongpw1!")
	assert.ErrorIs(t, err, apperror.ErrAuth)

	_, err = client.Login(ctx, "nobody@example.com", "Abcdef1!")
	assert.ErrorIs(t, err, apperror.ErrAuth)
}

func TestDuplicateRegistrationIsServerError(t *testing.T) {
	client, _ := newTestEnv(t)
	ctx := context.Background()

	_, err := client.Register(ctx, "Ada", "ada@example.com", "Abcdef1!")
	require.NoError(t, err)

	_, err = client.Register(ctx, "Imposter", "ada@example.com", "Abcdef1!")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrServer)
	assert.Contains(t, err.Error(), "User already exists")
}

func TestBearerCredentialComesFromSessionStore(t *testing.T) {
	client, sessions := newTestEnv(t)
	ctx := context.Background()

	// No session: protected endpoint answers 401 → ErrAuth.
	_, err := client.ListPosts(ctx)
	assert.ErrorIs(t, err, apperror.ErrAuth)

	// Setting the session is enough; no client reconfiguration needed.
	loginAs(t, client, sessions, "Ada", "ada@example.com")
	_, err = client.ListPosts(ctx)
	assert.NoError(t, err)

	// Clearing it immediately de-authenticates subsequent requests.
	require.NoError(t, sessions.Clear())
	_, err = client.ListPosts(ctx)
	assert.ErrorIs(t, err, apperror.ErrAuth)
}

func TestProfileLifecycle(t *testing.T) {
	client, sessions := newTestEnv(t)
	ctx := context.Background()
	loginAs(t, client, sessions, "Ada", "ada@example.com")

	// Before creation the profile is absent, which is not a server error.
	_, err := client.MyProfile(ctx)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	saved, err := client.SaveProfile(ctx, api.ProfilePayload{
		Name:   "Ada",
		Bio:    "mathematician",
		Skills: "Go, SQL, Analysis",
		GitHub: "https://github.com/ada",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL", "Analysis"}, saved.Skills, "backend splits the CSV edit form")

	got, err := client.MyProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mathematician", got.Bio)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "https://github.com/ada", got.Social.GitHub)
}

func TestUploadImage(t *testing.T) {
	client, sessions := newTestEnv(t)
	ctx := context.Background()
	loginAs(t, client, sessions, "Ada", "ada@example.com")

	url, err := client.UploadImage(ctx, "avatar.png", strings.NewReader("not-really-a-png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"), "imageUrl = %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "extension preserved, got %q", url)
}

func TestSearchProfiles(t *testing.T) {
	client, sessions := newTestEnv(t)
	ctx := context.Background()

	loginAs(t, client, sessions, "Ada", "ada@example.com")
	_, err := client.SaveProfile(ctx, api.ProfilePayload{Name: "Ada", Skills: "Go, SQL"})
	require.NoError(t, err)

	loginAs(t, client, sessions, "Brendan", "brendan@example.com")
	_, err = client.SaveProfile(ctx, api.ProfilePayload{Name: "Brendan", Skills: "JavaScript"})
	require.NoError(t, err)

	all, err := client.SearchProfiles(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := client.SearchProfiles(ctx, "ada", "")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.NotNil(t, byName[0].User)
	assert.Equal(t, "Ada", byName[0].User.Name)

	bySkill, err := client.SearchProfiles(ctx, "", "javascript")
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, "Brendan", bySkill[0].User.Name)

	none, err := client.SearchProfiles(ctx, "ada", "javascript")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostLifecycle(t *testing.T) {
	client, sessions := newTestEnv(t)
	ctx := context.Background()
	loginAs(t, client, sessions, "Ada", "ada@example.com")
	sess, _, _ := sessions.Get()

	post, err := client.CreatePost(ctx, "first post")
	require.NoError(t, err)
	assert.Equal(t, "first post", post.Text)
	assert.Equal(t, "Ada", post.Name)
	assert.Empty(t, post.Likes)

	// Like returns the authoritative like set and is idempotent.
	likes, err := client.LikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{sess.User.ID}, likes)

	likes, err = client.LikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{sess.User.ID}, likes, "double like must not duplicate")

	likes, err = client.UnlikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	comment, err := client.AddComment(ctx, post.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Text)
	assert.Equal(t, "Ada", comment.Name)

	posts, err := client.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Len(t, posts[0].Comments, 1)

	require.NoError(t, client.DeletePost(ctx, post.ID))
	posts, err = client.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestDeletingSomeoneElsesPostFails(t *testing.T) {
	client, sessions := newTestEnv(t)
	ctx := context.Background()

	loginAs(t, client, sessions, "Ada", "ada@example.com")
	post, err := client.CreatePost(ctx, "ada's post")
	require.NoError(t, err)

	loginAs(t, client, sessions, "Brendan", "brendan@example.com")
	err = client.DeletePost(ctx, post.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrServer)

	// The post is still there.
	posts, err := client.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestAdminEndpoints(t *testing.T) {
	client, sessions := newTestEnv(t)
	ctx := context.Background()

	loginAs(t, client, sessions, "Ada", "ada@example.com")
	post, err := client.CreatePost(ctx, "to be moderated")
	require.NoError(t, err)
	sess, _, _ := sessions.Get()
	memberID := sess.User.ID

	// A regular member is rejected by the backend, not just the UI gate.
	_, err = client.AdminListUsers(ctx)
	assert.ErrorIs(t, err, apperror.ErrServer)

	loginAs(t, client, sessions, "Root", adminEmail)

	users, err := client.AdminListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	posts, err := client.AdminListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	require.NoError(t, client.AdminDeletePost(ctx, post.ID))
	require.NoError(t, client.AdminDeleteUser(ctx, memberID))

	users, err = client.AdminListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestNetworkFailureMapsToErrNetwork(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(nil)
	srv.Close() // nothing is listening any more

	client := api.New(srv.URL, session.NewMemory(), logger)
	_, err := client.ListPosts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNetwork)
}

func TestContextCancellation(t *testing.T) {
	client, sessions := newTestEnv(t)
	loginAs(t, client, sessions, "Ada", "ada@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListPosts(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNetwork, "a cancelled request never completed")
}
