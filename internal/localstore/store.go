// Package localstore is the on-device table store backing offline
// scouting. It declares and versions the local schema and provides
// transactional, multi-table scoped access; sync operations are its
// only writers outside the scouting-entry flows.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SchemaVersion is the current local schema version. Bump on any table
// or index change; migrations are additive only.
const SchemaVersion = 4

// tables is the full local table set registered on open.
var tables = []interface{}{
	&Event{},
	&Team{},
	&LightMatch{},
	&MatchScoutingRecord{},
	&LayoutElement{},
	&SyncStatus{},
	&LightUser{},
	&schemaMeta{},
}

// Store is the process-wide local table store. One instance per client
// device, constructed at startup and injected into whatever needs it.
type Store struct {
	db      *gorm.DB
	version int
}

// Open opens (or creates) the local store at path and migrates it to
// version. Migration is additive: unaffected tables keep their data.
// Opening with a version lower than the one already persisted fails
// with ErrDowngrade before any migration runs.
func Open(path string, version int) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("localstore: failed to open %s: %w", path, err)
	}

	// An in-memory database exists per connection; pin the pool to one
	// so every transaction sees the same store.
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("localstore: failed to access pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// Version guard first, so a downgrade never touches table shapes.
	if db.Migrator().HasTable(&schemaMeta{}) {
		var meta schemaMeta
		err := db.Where("id = ?", 1).First(&meta).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("localstore: failed to read schema version: %w", err)
		}
		if err == nil && meta.Version > version {
			return nil, fmt.Errorf("%w: persisted version %d, requested %d",
				ErrDowngrade, meta.Version, version)
		}
	}

	if err := db.AutoMigrate(tables...); err != nil {
		return nil, fmt.Errorf("localstore: migration failed: %w", err)
	}

	meta := schemaMeta{ID: 1, Version: version, UpdatedAt: time.Now()}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "updated_at"}),
	}).Create(&meta).Error
	if err != nil {
		return nil, fmt.Errorf("localstore: failed to record schema version: %w", err)
	}

	return &Store{db: db, version: version}, nil
}

// Version returns the schema version the store was opened with.
func (s *Store) Version() int { return s.version }

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Tx is a transaction-scoped handle. All writes made through it commit
// together or not at all.
type Tx struct {
	db *gorm.DB
}

// WriteTx runs fn with exclusive write access. If fn returns an error
// every write is rolled back and the error is surfaced wrapped in
// SyncAbortedError.
func (s *Store) WriteTx(ctx context.Context, fn func(tx *Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(g *gorm.DB) error {
		return fn(&Tx{db: g})
	})
	if err != nil {
		return &SyncAbortedError{Err: err}
	}
	return nil
}

// ReadTx runs fn with shared read access in a single consistent snapshot.
func (s *Store) ReadTx(ctx context.Context, fn func(tx *Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(g *gorm.DB) error {
		return fn(&Tx{db: g})
	})
}

// Add inserts a record, failing with ConflictError if its key exists.
func (t *Tx) Add(rec interface{}) error {
	if err := t.db.Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &ConflictError{Table: tableNameOf(t.db, rec), Err: err}
		}
		return err
	}
	return nil
}

// BulkAdd inserts all records; any key collision fails the whole
// operation with ConflictError.
func (t *Tx) BulkAdd(recs interface{}) error {
	if err := t.db.Create(recs).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &ConflictError{Table: tableNameOf(t.db, recs), Err: err}
		}
		return err
	}
	return nil
}

// Put upserts a single record by primary key.
func (t *Tx) Put(rec interface{}) error {
	return t.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error
}

// BulkPut upserts all records by primary key.
func (t *Tx) BulkPut(recs interface{}) error {
	return t.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(recs).Error
}

// DeleteWhere removes all rows of model matching the predicate.
func (t *Tx) DeleteWhere(model interface{}, query string, args ...interface{}) error {
	return t.db.Where(query, args...).Delete(model).Error
}

// First loads the first row matching the predicate into dest. Returns
// gorm.ErrRecordNotFound when no row matches.
func (t *Tx) First(dest interface{}, query string, args ...interface{}) error {
	return t.db.Where(query, args...).First(dest).Error
}

// Find loads all rows matching the predicate into dest. An empty
// predicate loads every row.
func (t *Tx) Find(dest interface{}, query string, args ...interface{}) error {
	db := t.db
	if query != "" {
		db = db.Where(query, args...)
	}
	return db.Find(dest).Error
}

// Count returns the number of rows of model matching the predicate.
// An empty predicate counts every row.
func (t *Tx) Count(model interface{}, query string, args ...interface{}) (int64, error) {
	db := t.db.Model(model)
	if query != "" {
		db = db.Where(query, args...)
	}
	var n int64
	err := db.Count(&n).Error
	return n, err
}

// First loads the first row matching the predicate outside a transaction.
func (s *Store) First(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return s.db.WithContext(ctx).Where(query, args...).First(dest).Error
}

// Find loads all rows matching the predicate outside a transaction.
// An empty predicate loads every row.
func (s *Store) Find(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	db := s.db.WithContext(ctx)
	if query != "" {
		db = db.Where(query, args...)
	}
	return db.Find(dest).Error
}

func tableNameOf(db *gorm.DB, rec interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(rec); err != nil {
		return "unknown"
	}
	return stmt.Schema.Table
}
