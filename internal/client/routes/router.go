package routes

import (
	"sync"

	"github.com/avolkovs/shopdeck/internal/client/session"
)

// Router tracks the current view and re-runs the guards whenever the route
// or the session changes. onRender receives the terminal path after all
// redirects.
type Router struct {
	mu       sync.Mutex
	store    *session.Store
	current  string
	onRender func(path string)

	unsubscribe func()
}

func NewRouter(store *session.Store, onRender func(path string)) *Router {
	r := &Router{store: store, current: PathLogin, onRender: onRender}
	r.unsubscribe = store.Subscribe(r.refresh)
	return r
}

// Navigate resolves path against the current session state, makes the
// result the current view, and renders it.
func (r *Router) Navigate(path string) string {
	final := Resolve(path, r.store.Snapshot())

	r.mu.Lock()
	r.current = final
	fn := r.onRender
	r.mu.Unlock()

	if fn != nil {
		fn(final)
	}
	return final
}

// Current returns the view currently shown.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// refresh re-evaluates the current view after a session change. A view that
// no longer passes its guard is replaced by the redirect target.
func (r *Router) refresh() {
	final := Resolve(r.currentPath(), r.store.Snapshot())

	r.mu.Lock()
	changed := final != r.current
	r.current = final
	fn := r.onRender
	r.mu.Unlock()

	if changed && fn != nil {
		fn(final)
	}
}

func (r *Router) currentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Close detaches the router from the session store.
func (r *Router) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}
