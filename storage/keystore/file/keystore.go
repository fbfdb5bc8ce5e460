package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/storage/keystore"
)

type fileKeystore struct {
	path string
}

var _ keystore.Keystore = (*fileKeystore)(nil)

// New returns a Keystore persisting the session record as a single JSON
// document at path, so both halves cannot be written independently.
func New(path string) keystore.Keystore {
	return &fileKeystore{path: path}
}

func (ks *fileKeystore) Load() (keystore.Record, error) {
	data, err := os.ReadFile(ks.path)
	if err != nil {
		if os.IsNotExist(err) {
			return keystore.Record{}, keystore.ErrNotFound
		}
		return keystore.Record{}, errors.Wrap(err, "reading session record")
	}

	var rec keystore.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return keystore.Record{}, errors.Wrap(err, "parsing session record")
	}
	return rec, nil
}

func (ks *fileKeystore) Save(rec keystore.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "serializing session record")
	}
	if err := os.MkdirAll(filepath.Dir(ks.path), 0o700); err != nil {
		return errors.Wrap(err, "creating storage dir")
	}

	// write-then-rename so a crash mid-write cannot leave half a record
	tmp, err := os.CreateTemp(filepath.Dir(ks.path), ".session-*")
	if err != nil {
		return errors.Wrap(err, "creating temp record")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing session record")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing session record")
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return errors.Wrap(err, "restricting session record perms")
	}
	return errors.Wrap(os.Rename(tmp.Name(), ks.path), "committing session record")
}

func (ks *fileKeystore) Clear() error {
	if err := os.Remove(ks.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session record")
	}
	return nil
}
