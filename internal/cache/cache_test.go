package cache

import (
	"testing"
	"time"
)

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[int](2, time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache returned a hit")
	}

	c.Set("a", 1)
	c.Set("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = (%d, %v), want (1, true)", v, ok)
	}

	// "a" was just used, so inserting "c" must evict "b".
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatal("lru entry b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) after eviction = (%d, %v)", v, ok)
	}
	if c.Size() != 2 {
		t.Fatalf("Size = %d, want 2", c.Size())
	}
}

func TestLRU_Expiry(t *testing.T) {
	c := NewLRU[string](4, 10*time.Millisecond)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry returned a hit")
	}
}

func TestLRU_SetWithAge(t *testing.T) {
	c := NewLRU[string](4, time.Minute)

	// A snapshot older than the TTL never lands.
	c.SetWithAge("stale", "v", 2*time.Minute)
	if _, ok := c.Get("stale"); ok {
		t.Fatal("over-age snapshot returned a hit")
	}

	// A fresh snapshot does.
	c.SetWithAge("fresh", "v", time.Second)
	if _, ok := c.Get("fresh"); !ok {
		t.Fatal("fresh snapshot missing")
	}
}

func TestLRU_CleanExpired(t *testing.T) {
	c := NewLRU[int](8, 5*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(10 * time.Millisecond)
	c.Set("c", 3)

	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("CleanExpired = %d, want 2", n)
	}
	if c.Size() != 1 {
		t.Fatalf("Size after clean = %d, want 1", c.Size())
	}
}

func TestManager_StopWaits(t *testing.T) {
	m := NewManager()
	c := NewLRU[int](4, time.Millisecond)
	m.Register(c)
	m.StartCleanup(time.Millisecond)
	c.Set("a", 1)
	time.Sleep(5 * time.Millisecond)
	m.Stop() // must not deadlock

	if _, ok := c.Get("a"); ok {
		t.Fatal("entry survived cleanup past its TTL")
	}
}
