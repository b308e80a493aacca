// Package api is the boundary to the marketplace backend. The rest of the
// application depends only on the Client interface and the request/response
// contract; transport details stay in here.
package api

import (
	"context"
	"io"

	"github.com/avolkovs/shopdeck/internal/client/models"
)

// Stats are the admin dashboard counters.
type Stats struct {
	Users    int `json:"users"`
	Products int `json:"products"`
}

// AdminUser is one row of the admin user list.
type AdminUser struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

type Client interface {
	// Login exchanges credentials for a token and a profile snapshot.
	Login(ctx context.Context, username, password string) (string, models.UserProfile, error)

	// Register creates a new account.
	Register(ctx context.Context, username, passwordHash, displayName string) error

	// Upload sends an image as the multipart form field "image" and returns
	// the remote URL.
	Upload(ctx context.Context, filename string, body io.Reader) (string, error)

	// AdminStats fetches the dashboard counters.
	AdminStats(ctx context.Context) (Stats, error)

	// AdminUsers fetches the user list.
	AdminUsers(ctx context.Context) ([]AdminUser, error)
}
