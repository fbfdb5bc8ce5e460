package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/trezcool/academia/storage/keystore"
)

func TestFileKeystore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ks := New(path)

	t.Run("missing file", func(t *testing.T) {
		if _, err := ks.Load(); err != keystore.ErrNotFound {
			t.Errorf("Load() err = %v, want ErrNotFound", err)
		}
	})

	t.Run("roundtrip", func(t *testing.T) {
		rec := keystore.Record{
			AccessToken: "tok123",
			User:        json.RawMessage(`{"id":1,"name":"a","role":["student"]}`),
		}
		if err := ks.Save(rec); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}

		got, err := ks.Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if got.AccessToken != rec.AccessToken || string(got.User) != string(rec.User) {
			t.Errorf("Load() = %+v, want %+v", got, rec)
		}
	})

	t.Run("record is private to the owner", func(t *testing.T) {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() failed: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("perm = %o, want 600", perm)
		}
	})

	t.Run("clear", func(t *testing.T) {
		if err := ks.Clear(); err != nil {
			t.Fatalf("Clear() failed: %v", err)
		}
		if _, err := ks.Load(); err != keystore.ErrNotFound {
			t.Errorf("Load() after Clear() err = %v, want ErrNotFound", err)
		}
		// clearing twice is fine
		if err := ks.Clear(); err != nil {
			t.Errorf("second Clear() failed: %v", err)
		}
	})

	t.Run("corrupt file", func(t *testing.T) {
		if err := os.WriteFile(path, []byte("{oops"), 0o600); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
		if _, err := ks.Load(); err == nil || err == keystore.ErrNotFound {
			t.Errorf("Load() err = %v, want parse error", err)
		}
	})
}
