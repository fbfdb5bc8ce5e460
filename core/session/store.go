package session

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/storage/keystore"
)

// Store is the single source of truth for "who is logged in", backed by a
// durable Keystore so identity survives a restart.
//
// Invariant: the in-memory user is present iff a non-expired access token is
// persisted; both halves are always written and cleared together.
type Store struct {
	ks  keystore.Keystore
	log core.Logger

	mutex   sync.RWMutex
	usr     *User
	token   string
	loading bool

	bootOnce sync.Once
}

func NewStore(ks keystore.Keystore, log core.Logger) *Store {
	return &Store{ks: ks, log: log, loading: true}
}

// Bootstrap restores the session from durable storage. It runs exactly once
// per process; a missing, expired or corrupt record resolves to "logged out"
// with both storage halves cleared. It never fails.
func (s *Store) Bootstrap() {
	s.bootOnce.Do(s.bootstrap)
}

func (s *Store) bootstrap() {
	s.mutex.Lock()
	defer func() {
		s.loading = false
		s.mutex.Unlock()
	}()

	rec, err := s.ks.Load()
	if err != nil {
		if errors.Cause(err) != keystore.ErrNotFound {
			s.log.Warn("session: unreadable record, clearing", err)
			s.clearStorage()
		}
		return
	}
	if rec.IsEmpty() {
		s.log.Warn("session: incomplete record, clearing")
		s.clearStorage()
		return
	}
	if tokenExpired(rec.AccessToken) {
		s.log.Info("session: access token expired, clearing")
		s.clearStorage()
		return
	}

	var usr User
	if err := json.Unmarshal(rec.User, &usr); err != nil {
		s.log.Warn("session: corrupt user record, clearing", err)
		s.clearStorage()
		return
	}

	s.usr = &usr
	s.token = rec.AccessToken
}

// Set persists both session halves and updates the in-memory identity.
// Nothing is mutated if persisting fails.
func (s *Store) Set(usr User, token string) error {
	raw, err := json.Marshal(usr)
	if err != nil {
		return errors.Wrap(err, "serializing session user")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.ks.Save(keystore.Record{AccessToken: token, User: raw}); err != nil {
		return errors.Wrap(err, "persisting session")
	}
	s.usr = &usr
	s.token = token
	return nil
}

// Update shallow-merges the patch into the current user and re-persists the
// merged record. It is a no-op when no user is logged in.
func (s *Store) Update(patch UserPatch) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.usr == nil {
		return nil
	}

	merged := mergeUser(*s.usr, patch)
	raw, err := json.Marshal(merged)
	if err != nil {
		return errors.Wrap(err, "serializing session user")
	}
	if err := s.ks.Save(keystore.Record{AccessToken: s.token, User: raw}); err != nil {
		return errors.Wrap(err, "persisting session")
	}
	s.usr = &merged
	return nil
}

// Clear removes both persisted halves and resets the in-memory identity.
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.clearStorage()
}

func (s *Store) clearStorage() {
	if err := s.ks.Clear(); err != nil {
		s.log.Error("session: clearing record", err)
	}
	s.usr = nil
	s.token = ""
}

// User returns the current identity, if any.
func (s *Store) User() (User, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.usr == nil {
		return User{}, false
	}
	return *s.usr, true
}

// Token returns the current access token; empty when logged out.
func (s *Store) Token() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.token
}

// Loading reports whether Bootstrap has not resolved yet.
func (s *Store) Loading() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.loading
}
