// Package session holds the authenticated identity for the lifetime of the
// process. The Store is the sole owner of the credential token and the user
// profile: every other component reads it, and only Login/Logout mutate it.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/avolkovs/shopdeck/internal/client/models"
	"github.com/avolkovs/shopdeck/internal/client/storage"
	"github.com/avolkovs/shopdeck/internal/logging"
)

// storageKey is the fixed key the session record is persisted under.
const storageKey = "session"

// record is the durable form of a session.
type record struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// Snapshot is an immutable view of the store, suitable for guard decisions.
type Snapshot struct {
	Authenticated bool
	User          models.UserProfile
}

// Store is the single authoritative holder of authentication state.
// Construct exactly one per running application and pass it by reference.
//
// Invariant: the token and the user profile are set and cleared together;
// IsAuthenticated is true iff both are present.
type Store struct {
	mu    sync.Mutex
	token string
	user  *models.UserProfile

	repo storage.Repository
	log  logging.Logger

	subs    map[int]func()
	nextSub int
}

func NewStore(repo storage.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log, subs: make(map[int]func())}
}

// Hydrate loads the persisted session, if any. A missing record, an
// undecodable record, or a record with an unknown role all leave the store
// logged out; hydration never fails loudly.
func (s *Store) Hydrate(ctx context.Context) {
	raw, err := s.repo.Get(ctx, storageKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted session", "error", err)
		return
	}
	if raw == nil {
		return
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.Warn(ctx, "discarding undecodable persisted session", "error", err)
		return
	}
	if rec.Token == "" || rec.User.Username == "" {
		s.log.Warn(ctx, "discarding incomplete persisted session")
		return
	}

	s.mu.Lock()
	s.token = rec.Token
	user := rec.User
	s.user = &user
	s.mu.Unlock()
	s.notify()
}

// Login records the credential and profile and persists them. It cannot
// fail: a persistence error is logged and the in-memory session stands.
func (s *Store) Login(ctx context.Context, token string, user models.UserProfile) {
	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.mu.Unlock()

	raw, err := json.Marshal(record{Token: token, User: user})
	if err == nil {
		err = s.repo.Set(ctx, storageKey, raw)
	}
	if err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
	}

	s.notify()
}

// Logout clears the session and removes the persisted record. Calling it
// when already logged out is a no-op.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, storageKey); err != nil {
		s.log.Error(ctx, "failed to remove persisted session", "error", err)
	}

	s.notify()
}

// IsAuthenticated reports whether a credential token is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// CurrentUser returns the profile snapshot, if logged in.
func (s *Store) CurrentUser() (models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.UserProfile{}, false
	}
	return *s.user, true
}

// Token returns the credential token, or the empty string when logged out.
// The API client uses this as its header-injection source.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Snapshot returns a consistent view of both fields in one read.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{Authenticated: s.token != ""}
	if s.user != nil {
		snap.User = *s.user
	}
	return snap
}

// Subscribe registers fn to run after every state change and returns an
// unsubscribe func. Route guards re-evaluate through this mechanism.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
