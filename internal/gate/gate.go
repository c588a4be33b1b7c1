// Package gate decides whether the current session may enter a route.
//
// The gate never errors and never panics: an unreadable or missing session
// is simply "not authenticated" and results in a redirect to the login
// view, exactly like the browser client's PrivateRoute wrapper.
package gate

import (
	"strings"

	"github.com/sakif/devconnect/internal/session"
)

// Route names mirror the web client's paths. Anything under RouteHome is
// the authenticated area; RouteAdmin additionally requires the admin flag.
const (
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteHome     = "/home"
	RouteAdmin    = "/home/admin"
)

// Decision is the outcome of a gate check. When Allow is false, RedirectTo
// names the route to send the user to instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Gate guards routes using the injected session store.
type Gate struct {
	sessions session.Store
}

// New returns a Gate reading authentication state from sessions.
func New(sessions session.Store) *Gate {
	return &Gate{sessions: sessions}
}

// CanEnter checks whether the current session may visit route.
//
// Rules:
//   - routes outside /home are public
//   - /home and everything under it requires an authenticated session
//   - /home/admin and everything under it additionally requires admin
//
// Denials redirect to the login view.
func (g *Gate) CanEnter(route string) Decision {
	if !isUnder(route, RouteHome) {
		return Decision{Allow: true}
	}

	if !session.IsAuthenticated(g.sessions) {
		return Decision{Allow: false, RedirectTo: RouteLogin}
	}

	if isUnder(route, RouteAdmin) && !session.IsAdmin(g.sessions) {
		return Decision{Allow: false, RedirectTo: RouteLogin}
	}

	return Decision{Allow: true}
}

// isUnder reports whether route equals prefix or is nested beneath it.
// "/homestead" is not under "/home".
func isUnder(route, prefix string) bool {
	return route == prefix || strings.HasPrefix(route, prefix+"/")
}
