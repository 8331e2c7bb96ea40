package store_test

import (
	"context"
	"errors"
	"testing"

	"pulpit/internal/store"
	"pulpit/internal/testsupport"
)

func TestPutGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "sermons"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := s.Put(ctx, "sermons", []byte(`[{"id":"s1"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value, ok, err := s.Get(ctx, "sermons")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"id":"s1"}]` {
		t.Fatalf("unexpected value: %s", value)
	}

	// Overwrite replaces, not appends.
	if err := s.Put(ctx, "sermons", []byte(`[]`)); err != nil {
		t.Fatalf("Put overwrite failed: %v", err)
	}
	value, _, err = s.Get(ctx, "sermons")
	if err != nil || string(value) != `[]` {
		t.Fatalf("unexpected value after overwrite: %s err=%v", value, err)
	}
}

func TestOpenIsExclusivePerCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	if _, err := store.Open(cfg); !errors.Is(err, store.ErrPersistenceUnavailable) {
		t.Fatalf("expected ErrPersistenceUnavailable for second open, got %v", err)
	}
}

func TestReopenAfterCloseKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	if err := first.Put(ctx, "series", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := testsupport.MustOpenStore(t, cfg)
	value, ok, err := second.Get(ctx, "series")
	if err != nil || !ok {
		t.Fatalf("Get after reopen failed: ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"id":"a"}]` {
		t.Fatalf("unexpected value: %s", value)
	}
}

func TestMemoryFailureMode(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	if err := m.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	m.Fail = true
	if err := m.Put(ctx, "k", []byte("v")); !errors.Is(err, store.ErrPersistenceUnavailable) {
		t.Fatalf("expected ErrPersistenceUnavailable, got %v", err)
	}
	if _, _, err := m.Get(ctx, "k"); !errors.Is(err, store.ErrPersistenceUnavailable) {
		t.Fatalf("expected ErrPersistenceUnavailable, got %v", err)
	}
}
