package pages

import (
	"context"
	"errors"
	"sync"

	"github.com/avolkovs/shopdeck/internal/client/api"
	"github.com/avolkovs/shopdeck/internal/client/routes"
	"github.com/avolkovs/shopdeck/internal/client/session"
)

// Login handles the sign-in form.
type Login struct {
	mu     sync.Mutex
	busy   bool
	errMsg string

	api   api.Client
	store *session.Store
	nav   Navigator
}

func NewLogin(client api.Client, store *session.Store, nav Navigator) *Login {
	return &Login{api: client, store: store, nav: nav}
}

// Submit attempts to authenticate. On success the session store is updated
// and the user lands on the dashboard; on failure the server's message (or
// a generic fallback) is kept for inline display, the store stays untouched
// and the form remains editable.
func (l *Login) Submit(ctx context.Context, username, password string) {
	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		return
	}
	l.busy = true
	l.errMsg = ""
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.busy = false
		l.mu.Unlock()
	}()

	token, user, err := l.api.Login(ctx, username, password)
	if err != nil {
		l.setError(inlineMessage(err, "Login failed"))
		return
	}

	l.store.Login(ctx, token, user)
	l.nav.Navigate(routes.PathDashboard)
}

func (l *Login) setError(msg string) {
	l.mu.Lock()
	l.errMsg = msg
	l.mu.Unlock()
}

// Err returns the inline error message, or "".
func (l *Login) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Busy reports whether a submit is in progress.
func (l *Login) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.busy
}

// inlineMessage picks the user-visible text for a failed credential call:
// the server's message verbatim when there is one, otherwise the fallback.
func inlineMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
