// Package pages contains the page controllers: they orchestrate API calls
// and feed results into the session store and the upload machine. No error
// from a network call escapes a controller; failures become inline messages
// or logged-only events.
package pages

// Navigator moves the application to another view. The routes.Router
// satisfies this.
type Navigator interface {
	Navigate(path string) string
}
