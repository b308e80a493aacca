package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/avolkovs/shopdeck/internal/client/models"
)

// TokenSource supplies the current credential token, or "" when logged out.
// The session store satisfies this via its Token method.
type TokenSource func() string

// HTTPClient is the concrete Client over HTTP+JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource) *HTTPClient {
	if token == nil {
		token = func() string { return "" }
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}
}

// do performs one request. Transport-level failures map to ErrUnavailable;
// non-2xx responses become *Error carrying the server's message verbatim.
func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: failureMessage(resp)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// failureMessage extracts the server's {"error": "..."} body, falling back
// to the HTTP status text.
func failureMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(resp.StatusCode)
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(raw), out)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, models.UserProfile, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var resp struct {
		Token string             `json:"token"`
		User  models.UserProfile `json:"user"`
	}
	if err := c.postJSON(ctx, "/login", req, &resp); err != nil {
		return "", models.UserProfile{}, err
	}
	if resp.Token == "" {
		return "", models.UserProfile{}, fmt.Errorf("login response missing token")
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, passwordHash, displayName string) error {
	req := struct {
		Username     string `json:"username"`
		PasswordHash string `json:"password_hash"`
		DisplayName  string `json:"display_name"`
	}{Username: username, PasswordHash: passwordHash, DisplayName: displayName}

	return c.postJSON(ctx, "/users", req, nil)
}

func (c *HTTPClient) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, body); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/upload", mw.FormDataContentType(), &buf, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) AdminStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", "", nil, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (c *HTTPClient) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	var resp struct {
		Data []AdminUser `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/users", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
