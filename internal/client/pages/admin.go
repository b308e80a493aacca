package pages

import (
	"context"
	"sync"

	"github.com/avolkovs/shopdeck/internal/client/api"
	"github.com/avolkovs/shopdeck/internal/logging"
)

// Admin is the administrator's view: platform counters and the user list.
// Fetch failures are logged and the last-known values (initially zero and
// empty) stay on screen; the view never blocks on them.
type Admin struct {
	mu    sync.Mutex
	stats api.Stats
	users []api.AdminUser
	gen   uint64

	api api.Client
	log logging.Logger
}

func NewAdmin(client api.Client, log logging.Logger) *Admin {
	return &Admin{api: client, log: log}
}

// Refresh fetches the stats and the user list. Each refresh carries a
// generation number; results are applied only while that refresh is still
// the newest one, so a slow fetch can never overwrite fresher data.
func (a *Admin) Refresh(ctx context.Context) {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	if stats, err := a.api.AdminStats(ctx); err != nil {
		a.log.Error(ctx, "failed to fetch admin stats", "error", err)
	} else {
		a.mu.Lock()
		if gen == a.gen {
			a.stats = stats
		}
		a.mu.Unlock()
	}

	if users, err := a.api.AdminUsers(ctx); err != nil {
		a.log.Error(ctx, "failed to fetch admin users", "error", err)
	} else {
		a.mu.Lock()
		if gen == a.gen {
			a.users = users
		}
		a.mu.Unlock()
	}
}

// Stats returns the last-known counters.
func (a *Admin) Stats() api.Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Users returns the last-known user list.
func (a *Admin) Users() []api.AdminUser {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]api.AdminUser(nil), a.users...)
}
