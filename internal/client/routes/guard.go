// Package routes decides which view a navigation attempt lands on. Guards
// are pure functions over a session snapshot; the Router applies them on
// every navigation and on every session change, so no stale decision is
// ever cached.
package routes

import "github.com/avolkovs/shopdeck/internal/client/session"

// Client-side routing surface.
const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
	PathAdmin     = "/admin"
)

// Decision is the outcome of a guard: render the requested view, or go
// somewhere else. The originally requested path is never preserved.
type Decision struct {
	Render     bool
	RedirectTo string
}

func render() Decision {
	return Decision{Render: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Protected admits the view iff the session is authenticated; otherwise the
// user is sent to the login view.
func Protected(snap session.Snapshot) Decision {
	if !snap.Authenticated {
		return redirect(PathLogin)
	}
	return render()
}

// Admin admits the view iff the session is authenticated and carries the
// admin role. The authentication check always runs first: an unauthenticated
// user goes to login, never to the wrong-role redirect.
func Admin(snap session.Snapshot) Decision {
	if !snap.Authenticated {
		return redirect(PathLogin)
	}
	if !snap.User.IsAdmin() {
		return redirect(PathDashboard)
	}
	return render()
}

// Resolve walks the route table from path through redirects to the terminal
// view for the given session state. Unknown paths flow through the dashboard
// chain, like the bare "/" redirect.
func Resolve(path string, snap session.Snapshot) string {
	// The longest chain is unknown -> /dashboard -> /login; the bound is a
	// safety net, not a budget.
	for range 4 {
		switch path {
		case PathLogin, PathRegister:
			return path
		case PathDashboard:
			d := Protected(snap)
			if d.Render {
				return path
			}
			path = d.RedirectTo
		case PathAdmin:
			d := Admin(snap)
			if d.Render {
				return path
			}
			path = d.RedirectTo
		default:
			path = PathDashboard
		}
	}
	return PathLogin
}
