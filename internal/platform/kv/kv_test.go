package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"payslip/internal/platform/db"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if err := store.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	value, ok, err := store.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected key, got ok=%v err=%v", ok, err)
	}
	if value != "v2" {
		t.Fatalf("expected v2, got %q", value)
	}
	if err := store.Set(ctx, "", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kv.json")
	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exerciseStore(t, store)

	reopened, err := NewFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value, ok, err := reopened.Get(context.Background(), "k")
	if err != nil || !ok || value != "v2" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := store.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error for corrupt file")
	}
	if err := store.Set(context.Background(), "k", "v"); err == nil {
		t.Fatal("expected set to refuse overwriting corrupt file")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}

func TestPostgresStore(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()
	store, err := NewPostgres(ctx, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, "k"); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	exerciseStore(t, store)
}
