package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:): %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGetClear(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.Get(); err != nil || ok {
		t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
	}

	user := model.User{ID: "u1", Name: "Ada", Email: "ada@example.com", IsAdmin: true}
	if err := store.Set("tok-abc", user); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sess, ok, err := store.Get()
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if sess.Token != "tok-abc" {
		t.Errorf("Token = %q, want %q", sess.Token, "tok-abc")
	}
	if sess.User != user {
		t.Errorf("User round-trip = %+v, want %+v", sess.User, user)
	}
	if !session.IsAuthenticated(store) || !session.IsAdmin(store) {
		t.Error("helpers should see the stored admin session")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Get(); ok {
		t.Error("Get() after Clear should report logged out")
	}
	if err := store.Clear(); err != nil {
		t.Errorf("clearing an empty store: %v", err)
	}
}

func TestSetReplacesExistingSession(t *testing.T) {
	store := newTestStore(t)

	store.Set("old", model.User{ID: "u1", Name: "Old", IsAdmin: true})
	if err := store.Set("new", model.User{ID: "u2", Name: "New"}); err != nil {
		t.Fatalf("second Set: %v", err)
	}

	sess, ok, err := store.Get()
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if sess.Token != "new" || sess.User.ID != "u2" || sess.User.IsAdmin {
		t.Errorf("stale session data survived: %+v", sess)
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	// The whole point of the sqlite store: a login must outlive the process.
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := store.Set("persistent-token", model.User{ID: "u1", Name: "Ada"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	sess, ok, err := reopened.Get()
	if err != nil || !ok {
		t.Fatalf("Get() after reopen = ok %v, err %v", ok, err)
	}
	if sess.Token != "persistent-token" || sess.User.Name != "Ada" {
		t.Errorf("session did not survive reopen: %+v", sess)
	}
}
