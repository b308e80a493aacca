package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avolkovs/shopdeck/internal/client/routes"
	"github.com/avolkovs/shopdeck/internal/client/upload"
)

// renderPath draws the view for a terminal route. The router calls this
// after every navigation and after session changes that move the view.
func (a *App) renderPath(path string) {
	switch path {
	case routes.PathLogin:
		a.renderLogin()
	case routes.PathRegister:
		a.renderRegister()
	case routes.PathDashboard:
		a.renderDashboard()
	case routes.PathAdmin:
		a.renderAdmin(context.Background())
	}
}

func (a *App) heading(title string) {
	fmt.Fprintf(a.out, "\n== %s ==\n", strings.ToUpper(title))
}

func (a *App) renderLogin() {
	a.heading("Sign in")
	fmt.Fprintln(a.out, "Enter your credentials with: login")
	fmt.Fprintln(a.out, "New to the platform? Create an account with: register")
}

func (a *App) renderRegister() {
	a.heading("Join us")
	fmt.Fprintln(a.out, "Create an account with: register")
	fmt.Fprintln(a.out, "Already have an account? Sign in with: login")
}

func (a *App) renderDashboard() {
	a.heading("Dashboard")
	u := a.dashboard.Profile()
	fmt.Fprintf(a.out, "Welcome back, %s\n", u.Label())
	fmt.Fprintf(a.out, "@%s\n", u.Username)

	fmt.Fprintln(a.out, "\nAdd New Product")
	a.renderUpload()
	if name := a.dashboard.ProductName(); name != "" {
		fmt.Fprintf(a.out, "Product name: %s\n", name)
	}
}

// renderUpload draws the upload widget for its current phase. The local
// preview stays visible through upload, success and failure.
func (a *App) renderUpload() {
	st := a.dashboard.Upload().State()

	switch st.Phase {
	case upload.PhaseIdle:
		fmt.Fprintln(a.out, "Product image: none selected (upload <file>)")
		return
	case upload.PhasePreviewReady:
		fmt.Fprintf(a.out, "Product image: %s (%d bytes)\n", st.Preview.Name, st.Preview.Size)
	case upload.PhaseUploading:
		fmt.Fprintf(a.out, "Product image: %s (%d bytes) - uploading...\n", st.Preview.Name, st.Preview.Size)
	case upload.PhaseSucceeded:
		fmt.Fprintf(a.out, "Product image: %s (%d bytes)\n", st.Preview.Name, st.Preview.Size)
		fmt.Fprintf(a.out, "Upload Success! URL: %s\n", st.RemoteURL)
	case upload.PhaseFailed:
		fmt.Fprintf(a.out, "Product image: %s (%d bytes)\n", st.Preview.Name, st.Preview.Size)
		fmt.Fprintln(a.out, st.Err)
	}
}

// renderAdmin fetches the admin data and draws the counters and the user
// table. Fetch failures were already logged by the controller; whatever is
// last known gets shown.
func (a *App) renderAdmin(ctx context.Context) {
	a.admin.Refresh(ctx)

	a.heading("Admin dashboard")
	stats := a.admin.Stats()
	fmt.Fprintln(a.out, renderTable(
		[]string{"Total Users", "Total Products"},
		[][]string{{fmt.Sprint(stats.Users), fmt.Sprint(stats.Products)}},
	))

	fmt.Fprintln(a.out, "\nUser Management")
	rows := make([][]string, 0, len(a.admin.Users()))
	for _, u := range a.admin.Users() {
		rows = append(rows, []string{fmt.Sprint(u.ID), u.Username, strings.ToUpper(u.Role.String())})
	}
	fmt.Fprintln(a.out, renderTable([]string{"ID", "Username", "Role"}, rows))
}
