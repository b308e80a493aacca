package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkovs/shopdeck/internal/client/models"
)

func newClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second, nil)
}

func TestLogin_Success(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req["username"])
		assert.Equal(t, "secret", req["password"])

		_, _ = w.Write([]byte(`{"token":"t1","user":{"id":1,"username":"alice","role":"user"}}`))
	}))

	token, user, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t1", token)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestLogin_ServerMessageSurfacedVerbatim(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))

	_, _, err := c.Login(context.Background(), "alice", "nope")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestLogin_UnknownRoleRejected(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"t1","user":{"id":1,"username":"alice","role":"root"}}`))
	}))

	_, _, err := c.Login(context.Background(), "alice", "secret")
	require.Error(t, err)
}

func TestRegister_SendsContractFields(t *testing.T) {
	var got map[string]string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.Register(context.Background(), "bob", "pw", "Bobby")
	require.NoError(t, err)
	assert.Equal(t, "bob", got["username"])
	assert.Equal(t, "pw", got["password_hash"])
	assert.Equal(t, "Bobby", got["display_name"])
}

func TestUpload_MultipartImageField(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, "cat.png", hdr.Filename)
		b, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "pixels", string(b))

		_, _ = w.Write([]byte(`{"url":"https://x/y.png"}`))
	}))

	url, err := c.Upload(context.Background(), "cat.png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "https://x/y.png", url)
}

func TestBearerTokenInjectedWhenPresent(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"users":0,"products":0}`))
	}))
	t.Cleanup(srv.Close)

	token := ""
	c := NewHTTPClient(srv.URL, 5*time.Second, func() string { return token })

	_, err := c.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auth)

	token = "t1"
	_, err = c.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", auth)
}

func TestAdminStats(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"users":5,"products":12}`))
	}))

	stats, err := c.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 5, Products: 12}, stats)
}

func TestAdminUsers(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/users", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":1,"username":"alice","role":"user"},{"id":2,"username":"root","role":"admin"}]}`))
	}))

	users, err := c.AdminUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
}

func TestTransportFailureMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewHTTPClient(srv.URL, time.Second, nil)
	_, _, err := c.Login(context.Background(), "alice", "secret")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFailureWithoutBodyFallsBackToStatusText(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := c.Register(context.Background(), "bob", "pw", "")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}
