package pages

import (
	"context"
	"sync"

	"github.com/avolkovs/shopdeck/internal/client/api"
	"github.com/avolkovs/shopdeck/internal/client/routes"
)

// Register handles the account-creation form.
type Register struct {
	mu     sync.Mutex
	busy   bool
	errMsg string

	api api.Client
	nav Navigator
}

func NewRegister(client api.Client, nav Navigator) *Register {
	return &Register{api: client, nav: nav}
}

// Submit creates the account and, on success, sends the user to the login
// view. A registered user is not logged in automatically.
func (r *Register) Submit(ctx context.Context, username, password, displayName string) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return
	}
	r.busy = true
	r.errMsg = ""
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()
	}()

	if err := r.api.Register(ctx, username, password, displayName); err != nil {
		r.mu.Lock()
		r.errMsg = inlineMessage(err, "Registration failed")
		r.mu.Unlock()
		return
	}

	r.nav.Navigate(routes.PathLogin)
}

// Err returns the inline error message, or "".
func (r *Register) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// Busy reports whether a submit is in progress.
func (r *Register) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}
