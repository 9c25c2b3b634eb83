// scoutsync is the offline sync client. It downloads the current
// (org, event) scope from the remote scouting API into the device's
// local store so scouting can continue without connectivity.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
	"github.com/Joshua-Anderson1/scoutradioz/internal/providers"
	"github.com/Joshua-Anderson1/scoutradioz/internal/syncops"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		orgKey    = flag.String("org", os.Getenv("SCOUT_ORG_KEY"), "org key to sync")
		eventKey  = flag.String("event", os.Getenv("SCOUT_EVENT_KEY"), "event key to sync")
		storePath = flag.String("store", defaultStorePath(), "path to the local store database")
		only      = flag.String("only", "", "sync a single collection: event, teams, matches, scouting, layout")
		timeout   = flag.Duration("timeout", 2*time.Minute, "per-run sync timeout")
		watch     = flag.Duration("watch", 0, "re-sync on this interval instead of exiting")
	)
	flag.Parse()

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	store, err := localstore.Open(*storePath, localstore.SchemaVersion)
	if err != nil {
		logging.Fatal("Failed to open local store", "path", *storePath, "error", err.Error())
	}
	defer store.Close()

	ops := syncops.NewOperations(store, providers.NewScoutAPIProvider(), nil)
	sc := syncops.Context{OrgKey: *orgKey, EventKey: *eventKey}

	runOnce := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		return run(ctx, ops, sc, *only)
	}

	if err := runOnce(); err != nil {
		logging.Fatal("Sync failed", "error", err.Error())
	}
	logging.Info("Sync complete", "org_key", *orgKey, "event_key", *eventKey)

	if *watch <= 0 {
		return
	}

	ticker := time.NewTicker(*watch)
	defer ticker.Stop()
	for range ticker.C {
		if err := runOnce(); err != nil {
			logging.Error("Scheduled sync failed", "error", err.Error())
			continue
		}
		logging.Info("Scheduled sync complete", "org_key", *orgKey, "event_key", *eventKey)
	}
}

// run executes the requested collections. Collections are independent
// except that teams depend on the event record being cached first.
func run(ctx context.Context, ops *syncops.Operations, sc syncops.Context, only string) error {
	switch only {
	case "event":
		return ops.SyncEvent(ctx, sc)
	case "teams":
		return ops.SyncTeams(ctx, sc)
	case "matches":
		return ops.SyncMatches(ctx, sc)
	case "scouting":
		_, err := ops.SyncMatchScouting(ctx, sc)
		return err
	case "layout":
		return ops.SyncLayout(ctx, sc)
	case "":
	default:
		return fmt.Errorf("unknown collection %q", only)
	}

	// Full sync. Event first so the team sync precondition holds; an
	// already-cached event is fine.
	if err := ops.SyncEvent(ctx, sc); err != nil {
		var conflict *localstore.ConflictError
		if !errors.As(err, &conflict) {
			return err
		}
		logging.Info("Event already cached, continuing", "event_key", sc.EventKey)
	}
	if err := ops.SyncTeams(ctx, sc); err != nil {
		return err
	}
	if err := ops.SyncMatches(ctx, sc); err != nil {
		return err
	}
	if _, err := ops.SyncMatchScouting(ctx, sc); err != nil {
		return err
	}
	return ops.SyncLayout(ctx, sc)
}

func defaultStorePath() string {
	if p := os.Getenv("SCOUT_STORE_PATH"); p != "" {
		return p
	}
	return "scoutradioz.db"
}
