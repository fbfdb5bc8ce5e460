package inmemstore

import (
	"sync"

	"github.com/trezcool/academia/storage/keystore"
)

type inmemKeystore struct {
	mutex sync.RWMutex
	rec   *keystore.Record
}

var _ keystore.Keystore = (*inmemKeystore)(nil)

// New returns a volatile Keystore, for tests and ephemeral sessions.
func New() keystore.Keystore {
	return &inmemKeystore{}
}

func (ks *inmemKeystore) Load() (keystore.Record, error) {
	ks.mutex.RLock()
	defer ks.mutex.RUnlock()

	if ks.rec == nil {
		return keystore.Record{}, keystore.ErrNotFound
	}
	return *ks.rec, nil
}

func (ks *inmemKeystore) Save(rec keystore.Record) error {
	ks.mutex.Lock()
	defer ks.mutex.Unlock()
	ks.rec = &rec
	return nil
}

func (ks *inmemKeystore) Clear() error {
	ks.mutex.Lock()
	defer ks.mutex.Unlock()
	ks.rec = nil
	return nil
}
