package cli

import (
	"context"
	"fmt"

	"github.com/avolkovs/shopdeck/internal/client/routes"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and submits them. On success the login
// controller stores the session and navigates to the dashboard; on failure
// the inline message is printed and the form can simply be retried.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	a.login.Submit(ctx, username, password)
	if msg := a.login.Err(); msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	return nil
}

// Register prompts for the new account's fields and submits them. Success
// lands on the login view; the new user signs in explicitly.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	displayName, err := getSimpleText(a.reader, "Display name (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	a.register.Submit(ctx, username, password, displayName)
	if msg := a.register.Err(); msg != "" {
		fmt.Fprintln(a.out, msg)
		return nil
	}
	fmt.Fprintln(a.out, "Account created. Please sign in.")
	return nil
}

// Go navigates to a path; the guards decide what actually renders.
func (a *App) Go(_ context.Context, path string) error {
	a.router.Navigate(path)
	return nil
}

// Upload selects a file into the dashboard's upload widget and starts the
// upload. The preview is shown immediately; the command then waits for the
// outcome and re-renders the widget.
func (a *App) Upload(ctx context.Context, path string) error {
	if a.router.Current() != routes.PathDashboard {
		fmt.Fprintln(a.out, "The upload widget lives on /dashboard")
		return nil
	}

	machine := a.dashboard.Upload()
	if err := machine.Select(path); err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}
	a.renderUpload()

	done, err := machine.Start(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}
	<-done
	a.renderUpload()
	return nil
}

// Retry re-submits the current preview after a failed upload, without
// re-selecting the file.
func (a *App) Retry(ctx context.Context) error {
	done, err := a.dashboard.Upload().Start(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}
	<-done
	a.renderUpload()
	return nil
}

// SetName records the product-name field of the listing form.
func (a *App) SetName(_ context.Context, name string) error {
	a.dashboard.SetProductName(name)
	return nil
}

// Refresh re-fetches the admin data and re-renders the admin view.
func (a *App) Refresh(ctx context.Context) error {
	if a.router.Current() != routes.PathAdmin {
		fmt.Fprintln(a.out, "Nothing to refresh here")
		return nil
	}
	a.renderAdmin(ctx)
	return nil
}

// WhoAmI prints the current identity.
func (a *App) WhoAmI(_ context.Context) error {
	u, ok := a.store.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (@%s, %s)\n", u.Label(), u.Username, u.Role)
	return nil
}

// Logout ends the session; the router reacts by moving to the login view.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	return nil
}
