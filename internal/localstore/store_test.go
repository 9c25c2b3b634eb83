package localstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", SchemaVersion)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_PersistsSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	store, err := Open(path, SchemaVersion)
	if err != nil {
		t.Fatalf("Expected open to succeed, got %v", err)
	}
	if store.Version() != SchemaVersion {
		t.Errorf("Expected version %d, got %d", SchemaVersion, store.Version())
	}
	store.Close()

	// Re-opening with the same version is a no-op.
	store, err = Open(path, SchemaVersion)
	if err != nil {
		t.Fatalf("Expected re-open to succeed, got %v", err)
	}
	store.Close()
}

func TestOpen_AdditiveUpgradeKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	store, err := Open(path, SchemaVersion)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	err = store.WriteTx(context.Background(), func(tx *Tx) error {
		return tx.Add(&Event{Key: "2024test", Name: "Test Event", Year: 2024})
	})
	if err != nil {
		t.Fatalf("Failed to seed event: %v", err)
	}
	store.Close()

	store, err = Open(path, SchemaVersion+1)
	if err != nil {
		t.Fatalf("Expected upgrade to succeed, got %v", err)
	}
	defer store.Close()

	var event Event
	if err := store.First(context.Background(), &event, "key = ?", "2024test"); err != nil {
		t.Fatalf("Event lost across upgrade: %v", err)
	}
	if event.Name != "Test Event" {
		t.Errorf("Expected event name preserved, got %q", event.Name)
	}
}

func TestOpen_DowngradeFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	store, err := Open(path, SchemaVersion+1)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	store.Close()

	_, err = Open(path, SchemaVersion)
	if err == nil {
		t.Fatal("Expected downgrade to fail")
	}
	if !errors.Is(err, ErrDowngrade) {
		t.Errorf("Expected ErrDowngrade, got %v", err)
	}
}

func TestWriteTx_RollsBackOnError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.WriteTx(ctx, func(tx *Tx) error {
		if err := tx.Add(&Team{Key: "frc1", TeamNumber: 1}); err != nil {
			return err
		}
		if err := tx.Add(&Team{Key: "frc2", TeamNumber: 2}); err != nil {
			return err
		}
		return boom
	})

	if err == nil {
		t.Fatal("Expected transaction error")
	}
	var aborted *SyncAbortedError
	if !errors.As(err, &aborted) {
		t.Errorf("Expected SyncAbortedError, got %T", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Expected cause to be preserved, got %v", err)
	}

	var teams []Team
	if err := store.Find(ctx, &teams, ""); err != nil {
		t.Fatalf("Failed to query teams: %v", err)
	}
	if len(teams) != 0 {
		t.Errorf("Expected no partial writes, found %d rows", len(teams))
	}
}

func TestAdd_DuplicateKeyIsConflict(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seed := func() error {
		return store.WriteTx(ctx, func(tx *Tx) error {
			return tx.Add(&Event{Key: "2024test", Name: "First", Year: 2024})
		})
	}
	if err := seed(); err != nil {
		t.Fatalf("First add failed: %v", err)
	}

	err := seed()
	if err == nil {
		t.Fatal("Expected duplicate add to fail")
	}
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
	if conflict.Table != "events" {
		t.Errorf("Expected table events, got %q", conflict.Table)
	}
}

func TestBulkAdd_AllOrNothing(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.WriteTx(ctx, func(tx *Tx) error {
		return tx.Add(&Team{Key: "frc3", TeamNumber: 3})
	})
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	err = store.WriteTx(ctx, func(tx *Tx) error {
		return tx.BulkAdd([]Team{
			{Key: "frc4", TeamNumber: 4},
			{Key: "frc3", TeamNumber: 3}, // collides
		})
	})
	if err == nil {
		t.Fatal("Expected bulk add to fail on collision")
	}

	count, err := countRows(store, &Team{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected only the seeded row to survive, got %d rows", count)
	}
}

func TestPut_Upserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	put := func(name string) error {
		return store.WriteTx(ctx, func(tx *Tx) error {
			return tx.Put(&Event{Key: "2024test", Name: name, Year: 2024})
		})
	}

	if err := put("Original"); err != nil {
		t.Fatalf("First put failed: %v", err)
	}
	if err := put("Updated"); err != nil {
		t.Fatalf("Second put failed: %v", err)
	}

	var event Event
	if err := store.First(ctx, &event, "key = ?", "2024test"); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if event.Name != "Updated" {
		t.Errorf("Expected upserted name, got %q", event.Name)
	}

	count, err := countRows(store, &Event{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected a single row after upsert, got %d", count)
	}
}

func TestMatchTeamKey_Deterministic(t *testing.T) {
	key := MatchTeamKey("2024test_qm1", "frc1")
	if key != "2024test_qm1_frc1" {
		t.Errorf("Unexpected composite key %q", key)
	}
	if key != MatchTeamKey("2024test_qm1", "frc1") {
		t.Error("Composite key derivation must be deterministic")
	}
}

func countRows(store *Store, model interface{}) (int64, error) {
	var n int64
	err := store.ReadTx(context.Background(), func(tx *Tx) error {
		var err error
		n, err = tx.Count(model, "")
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
