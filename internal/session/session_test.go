package session

import (
	"testing"

	"github.com/sakif/devconnect/internal/model"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemory()

	// Fresh store: logged out.
	if IsAuthenticated(store) {
		t.Error("empty store should not be authenticated")
	}
	if IsAdmin(store) {
		t.Error("empty store should not be admin")
	}
	if _, ok, err := store.Get(); err != nil || ok {
		t.Errorf("Get() on empty store = ok %v, err %v", ok, err)
	}

	// Login as a regular user.
	user := model.User{ID: "u1", Name: "Ada", IsAdmin: false}
	if err := store.Set("tok-123", user); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sess, ok, err := store.Get()
	if err != nil || !ok {
		t.Fatalf("Get() after Set = ok %v, err %v", ok, err)
	}
	if sess.Token != "tok-123" {
		t.Errorf("Token = %q, want %q", sess.Token, "tok-123")
	}
	if sess.User != user {
		t.Errorf("User = %+v, want %+v", sess.User, user)
	}
	if !IsAuthenticated(store) {
		t.Error("store with token should be authenticated")
	}
	if IsAdmin(store) {
		t.Error("non-admin user should not be admin")
	}

	// Logout.
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if IsAuthenticated(store) || IsAdmin(store) {
		t.Error("cleared store should be fully logged out")
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestMemoryStoreAdminFlag(t *testing.T) {
	store := NewMemory()
	if err := store.Set("tok", model.User{ID: "u2", Name: "Root", IsAdmin: true}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !IsAdmin(store) {
		t.Error("IsAdmin should follow user.IsAdmin")
	}
}

func TestMemoryStoreSetReplaces(t *testing.T) {
	store := NewMemory()
	store.Set("old", model.User{ID: "u1", IsAdmin: true})
	store.Set("new", model.User{ID: "u2", IsAdmin: false})

	sess, ok, _ := store.Get()
	if !ok || sess.Token != "new" || sess.User.ID != "u2" {
		t.Errorf("Set should replace the whole session, got %+v", sess)
	}
	if IsAdmin(store) {
		t.Error("admin flag from the old session must not survive")
	}
}
