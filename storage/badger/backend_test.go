package badger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenBackendInMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open in-memory backend: %v", err)
	}

	if backend.IsClosed() {
		t.Fatal("Expected backend to be open")
	}

	if err := backend.Close(); err != nil {
		t.Fatalf("Failed to close backend: %v", err)
	}

	if !backend.IsClosed() {
		t.Fatal("Expected backend to be closed")
	}
}

func TestOpenBackendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles-db")

	backend, err := OpenBackend(path, false)
	if err != nil {
		t.Fatalf("Failed to open backend at %s: %v", path, err)
	}
	defer backend.Close()

	if backend.IsClosed() {
		t.Fatal("Expected backend to be open")
	}
}

func TestWithTransactionRollback(t *testing.T) {
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	boom := errors.New("boom")
	err = backend.WithTransaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected callback error, got %v", err)
	}
}
