package gate

import (
	"testing"

	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/session"
)

func TestCanEnter(t *testing.T) {
	loggedOut := session.NewMemory()

	member := session.NewMemory()
	member.Set("tok", model.User{ID: "u1", Name: "Ada"})

	admin := session.NewMemory()
	admin.Set("tok", model.User{ID: "u2", Name: "Root", IsAdmin: true})

	tests := []struct {
		name         string
		store        session.Store
		route        string
		wantAllow    bool
		wantRedirect string
	}{
		{"login is public when logged out", loggedOut, RouteLogin, true, ""},
		{"register is public when logged out", loggedOut, RouteRegister, true, ""},
		{"home denied when logged out", loggedOut, RouteHome, false, RouteLogin},
		{"nested home denied when logged out", loggedOut, "/home/posts", false, RouteLogin},
		{"admin denied when logged out", loggedOut, RouteAdmin, false, RouteLogin},

		{"home allowed for member", member, RouteHome, true, ""},
		{"posts allowed for member", member, "/home/posts", true, ""},
		{"search allowed for member", member, "/home/search", true, ""},
		{"admin denied for member", member, RouteAdmin, false, RouteLogin},
		{"nested admin denied for member", member, "/home/admin/users", false, RouteLogin},

		{"admin allowed for admin", admin, RouteAdmin, true, ""},
		{"nested admin allowed for admin", admin, "/home/admin/posts", true, ""},

		{"prefix is not containment", member, "/homestead", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.store).CanEnter(tt.route)
			if got.Allow != tt.wantAllow {
				t.Errorf("CanEnter(%q).Allow = %v, want %v", tt.route, got.Allow, tt.wantAllow)
			}
			if got.RedirectTo != tt.wantRedirect {
				t.Errorf("CanEnter(%q).RedirectTo = %q, want %q", tt.route, got.RedirectTo, tt.wantRedirect)
			}
		})
	}
}

func TestDenialAfterLogout(t *testing.T) {
	store := session.NewMemory()
	store.Set("tok", model.User{ID: "u1", IsAdmin: true})
	g := New(store)

	if d := g.CanEnter(RouteAdmin); !d.Allow {
		t.Fatal("admin should enter admin route before logout")
	}

	store.Clear()

	if d := g.CanEnter(RouteAdmin); d.Allow || d.RedirectTo != RouteLogin {
		t.Errorf("after logout CanEnter(admin) = %+v, want redirect to login", d)
	}
}
