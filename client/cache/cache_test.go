package querycache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestCache_Do(t *testing.T) {
	t.Run("caches the first fetch", func(t *testing.T) {
		c := New(8, time.Minute)
		var calls int32
		fetch := func() ([]byte, error) {
			atomic.AddInt32(&calls, 1)
			return []byte("payload"), nil
		}

		for i := 0; i < 3; i++ {
			data, err := c.Do("/courses", fetch)
			if err != nil {
				t.Fatalf("Do() failed: %v", err)
			}
			if string(data) != "payload" {
				t.Errorf("Do() = %q", data)
			}
		}
		if calls != 1 {
			t.Errorf("fetch called %d times, want 1", calls)
		}
	})

	t.Run("failed fetches are not cached", func(t *testing.T) {
		c := New(8, time.Minute)
		var calls int32
		boom := errors.New("backend down")
		fetch := func() ([]byte, error) {
			atomic.AddInt32(&calls, 1)
			return nil, boom
		}

		for i := 0; i < 2; i++ {
			if _, err := c.Do("/courses", fetch); errors.Cause(err) != boom {
				t.Errorf("Do() err = %v, want %v", err, boom)
			}
		}
		if calls != 2 {
			t.Errorf("fetch called %d times, want 2 (errors must not stick)", calls)
		}
		if c.Len() != 0 {
			t.Errorf("Len() = %d after failed fetches", c.Len())
		}
	})

	t.Run("concurrent identical queries fetch once", func(t *testing.T) {
		c := New(8, time.Minute)
		var calls int32
		fetch := func() ([]byte, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(10 * time.Millisecond)
			return []byte("payload"), nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := c.Do("/courses", fetch); err != nil {
					t.Errorf("Do() failed: %v", err)
				}
			}()
		}
		wg.Wait()

		if calls != 1 {
			t.Errorf("fetch called %d times, want 1", calls)
		}
	})
}

func TestCache_Invalidate(t *testing.T) {
	c := New(8, time.Minute)
	seed := func(key string) {
		if _, err := c.Do(key, func() ([]byte, error) { return []byte(key), nil }); err != nil {
			t.Fatalf("seeding %s: %v", key, err)
		}
	}
	seed("/courses?page=1")
	seed("/courses/7")
	seed("/groups")

	c.Invalidate("/courses")

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	var refetched bool
	if _, err := c.Do("/courses/7", func() ([]byte, error) {
		refetched = true
		return []byte("fresh"), nil
	}); err != nil {
		t.Fatalf("Do() failed: %v", err)
	}
	if !refetched {
		t.Error("invalidated entry served from cache")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Purge()", c.Len())
	}
}
