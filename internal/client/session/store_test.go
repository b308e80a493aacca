package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkovs/shopdeck/internal/client/models"
	"github.com/avolkovs/shopdeck/internal/client/storage"
	"github.com/avolkovs/shopdeck/internal/logging"
)

func alice() models.UserProfile {
	return models.UserProfile{ID: 1, Username: "alice", Role: models.RoleUser}
}

func newStore(t *testing.T) (*Store, *storage.MemoryRepository, *logging.Recorder) {
	t.Helper()
	repo := storage.NewMemoryRepository()
	rec := logging.NewRecorder()
	return NewStore(repo, rec), repo, rec
}

func TestLogin_SetsTokenAndUserTogether(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	assert.False(t, s.IsAuthenticated())
	_, ok := s.CurrentUser()
	assert.False(t, ok)

	s.Login(ctx, "t1", alice())

	assert.True(t, s.IsAuthenticated())
	u, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "t1", s.Token())
}

func TestLogin_PersistsUnderFixedKey(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()

	s.Login(ctx, "t1", alice())

	raw, err := repo.Get(ctx, "session")
	require.NoError(t, err)
	require.NotNil(t, raw)

	var rec record
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, "t1", rec.Token)
	assert.Equal(t, "alice", rec.User.Username)
}

func TestLogout_ClearsEverythingAndIsIdempotent(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()

	s.Login(ctx, "t1", alice())
	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	_, ok := s.CurrentUser()
	assert.False(t, ok)

	raw, err := repo.Get(ctx, "session")
	require.NoError(t, err)
	assert.Nil(t, raw)

	// Second logout: same end state, no notification storm.
	calls := 0
	defer s.Subscribe(func() { calls++ })()
	s.Logout(ctx)
	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, calls)
}

func TestInvariant_TokenPresentIffUserPresent(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	check := func() {
		_, ok := s.CurrentUser()
		assert.Equal(t, s.IsAuthenticated(), ok)
	}

	check()
	s.Login(ctx, "t1", alice())
	check()
	s.Logout(ctx)
	check()
	s.Hydrate(ctx)
	check()
}

func TestHydrate_RestoresPersistedSession(t *testing.T) {
	repo := storage.NewMemoryRepository()
	ctx := context.Background()

	first := NewStore(repo, logging.NewRecorder())
	first.Login(ctx, "t1", alice())

	// Simulated reload: a fresh store over the same storage.
	second := NewStore(repo, logging.NewRecorder())
	second.Hydrate(ctx)

	assert.True(t, second.IsAuthenticated())
	u, ok := second.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
}

func TestHydrate_UndecodableRecordStartsLoggedOut(t *testing.T) {
	repo := storage.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "session", []byte(`{not json`)))

	s := NewStore(repo, logging.NewRecorder())
	s.Hydrate(ctx)

	assert.False(t, s.IsAuthenticated())
}

func TestHydrate_UnknownRoleStartsLoggedOut(t *testing.T) {
	repo := storage.NewMemoryRepository()
	ctx := context.Background()
	raw := []byte(`{"token":"t1","user":{"id":1,"username":"alice","role":"root"}}`)
	require.NoError(t, repo.Set(ctx, "session", raw))

	s := NewStore(repo, logging.NewRecorder())
	s.Hydrate(ctx)

	assert.False(t, s.IsAuthenticated())
}

func TestHydrate_TokenWithoutUserStartsLoggedOut(t *testing.T) {
	repo := storage.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "session", []byte(`{"token":"t1"}`)))

	s := NewStore(repo, logging.NewRecorder())
	s.Hydrate(ctx)

	assert.False(t, s.IsAuthenticated())
}

func TestSubscribe_NotifiedOnLoginAndLogout(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.Login(ctx, "t1", alice())
	assert.Equal(t, 1, calls)

	s.Logout(ctx)
	assert.Equal(t, 2, calls)

	unsubscribe()
	s.Login(ctx, "t2", alice())
	assert.Equal(t, 2, calls)
}

// failingRepo errors on every write so persistence failures can be observed.
type failingRepo struct{ storage.Repository }

func (f failingRepo) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestLogin_PersistenceFailureIsLoggedNotReturned(t *testing.T) {
	rec := logging.NewRecorder()
	s := NewStore(failingRepo{storage.NewMemoryRepository()}, rec)
	ctx := context.Background()

	s.Login(ctx, "t1", alice())

	// The in-memory session stands regardless.
	assert.True(t, s.IsAuthenticated())
	assert.True(t, rec.HasError("failed to persist session"))
}

func TestSnapshot_ConsistentView(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated)

	s.Login(ctx, "t1", alice())
	snap = s.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "alice", snap.User.Username)
}
