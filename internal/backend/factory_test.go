package backend

import (
	"context"
	"testing"
)

func TestCreateMemoryBackend(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(ctx, Config{Type: MemoryBackend, Seed: true})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	defer result.Cleanup()

	snap, err := result.Store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Members) == 0 || len(snap.Transactions) == 0 {
		t.Fatal("seeded backend should contain starter data")
	}
}

func TestCreateMemoryBackendWithoutSeed(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(ctx, Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	defer result.Cleanup()

	snap, _ := result.Store.Snapshot(ctx)
	if len(snap.Members) != 0 {
		t.Fatalf("unseeded backend should be empty, got %d members", len(snap.Members))
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(ctx, Config{
		Type:      SQLiteBackend,
		SQLiteDSN: "file:factorytest?mode=memory&cache=shared",
		Seed:      true,
	})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	defer result.Cleanup()

	snap, err := result.Store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Categories) != 5 {
		t.Fatalf("seeded categories = %d, want 5", len(snap.Categories))
	}
}

func TestCreateBackendRejectsUnknownType(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.CreateBackend(context.Background(), Config{Type: "postgres"}); err == nil {
		t.Fatal("expected error for unknown backend type")
	}
}

func TestTypeIsValid(t *testing.T) {
	if !MemoryBackend.IsValid() || !SQLiteBackend.IsValid() {
		t.Fatal("known types must be valid")
	}
	if Type("redis").IsValid() {
		t.Fatal("unknown type must be invalid")
	}
}
