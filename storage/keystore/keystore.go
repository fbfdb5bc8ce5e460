package keystore

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("no session record")

// Record is the durable half of a session: the bearer token and the
// serialized user, always persisted and cleared together.
type Record struct {
	AccessToken string          `json:"access_token"`
	User        json.RawMessage `json:"user"`
}

func (r Record) IsEmpty() bool {
	return r.AccessToken == "" || len(r.User) == 0
}

// Keystore is the durable client storage behind the session store.
type Keystore interface {
	// Load returns the persisted Record; ErrNotFound when none exists.
	Load() (Record, error)
	// Save persists both halves of the Record as one atomic write.
	Save(rec Record) error
	// Clear removes the Record. Clearing an empty store is not an error.
	Clear() error
}
