package cache

import (
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New(time.Minute, 10)

	if _, fresh := c.Get("missing"); fresh {
		t.Error("missing key must not be fresh")
	}

	c.Set("k", []byte("v"))
	data, fresh := c.Get("k")
	if !fresh {
		t.Error("just-set key must be fresh")
	}
	if string(data) != "v" {
		t.Errorf("got %q, want %q", data, "v")
	}
}

func TestCache_StaleValueRetained(t *testing.T) {
	c := New(10*time.Millisecond, 10)
	c.Set("k", []byte("stale"))

	time.Sleep(20 * time.Millisecond)

	data, fresh := c.Get("k")
	if fresh {
		t.Error("expired entry must not report fresh")
	}
	if string(data) != "stale" {
		t.Errorf("stale value must still be served, got %q", data)
	}
}

func TestCache_EvictsOldestInserted(t *testing.T) {
	c := New(time.Minute, 2)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	if data, _ := c.Get("a"); data != nil {
		t.Error("oldest entry should have been evicted")
	}
	if data, _ := c.Get("b"); string(data) != "2" {
		t.Error("newer entry should survive eviction")
	}
	if data, _ := c.Get("c"); string(data) != "3" {
		t.Error("newest entry should survive eviction")
	}
	if c.Size() != 2 {
		t.Errorf("size = %d, want 2", c.Size())
	}
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	c := New(time.Minute, 2)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("a", []byte("updated"))

	if data, _ := c.Get("a"); string(data) != "updated" {
		t.Errorf("got %q, want updated", data)
	}
	if data, _ := c.Get("b"); string(data) != "2" {
		t.Error("overwrite of an existing key must not evict another entry")
	}
}
