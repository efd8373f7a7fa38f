package cache

import (
	"testing"
	"time"
)

func TestMemCacheSetGet(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	m.Set("a", 1, 0)
	v, ok := m.Get("a")
	if !ok || v.(int) != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}

	if _, ok := m.Get("missing"); ok {
		t.Error("missing key must not be found")
	}
}

func TestMemCacheTTL(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	m.Set("a", 1, 10*time.Millisecond)
	if _, ok := m.Get("a"); !ok {
		t.Fatal("fresh item must be readable")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := m.Get("a"); ok {
		t.Error("expired item must not be returned")
	}
}

func TestMemCacheDeleteAndFlush(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	m.Set("a", 1, 0)
	m.Set("b", 2, 0)

	m.Delete("a")
	if _, ok := m.Get("a"); ok {
		t.Error("deleted key must not be found")
	}

	m.Flush()
	if _, ok := m.Get("b"); ok {
		t.Error("flushed cache must be empty")
	}
}

func TestMemCacheCloseStopsCleanup(t *testing.T) {
	m := NewMemCache(time.Millisecond)
	m.Set("a", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	m.Close()
}
