package syncops

import (
	"context"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
)

// SyncEvent downloads the event document for the current scope and
// inserts it into the local store. The insert fails with ConflictError
// if the event is already cached; callers must clear first to re-sync.
func (o *Operations) SyncEvent(ctx context.Context, sc Context) error {
	if err := sc.Require(); err != nil {
		return err
	}

	log := logging.WithOperation("event_sync", sc.OrgKey, sc.EventKey)
	log.Infow("Starting event sync")
	start := time.Now()

	event, err := o.api.GetEvent(ctx, sc.EventKey)
	if err != nil {
		o.fail("event_sync", "fetch")
		log.Errorw("Event fetch failed", "error", err.Error())
		return err
	}

	err = o.store.WriteTx(ctx, func(tx *localstore.Tx) error {
		return tx.Add(event)
	})
	if err != nil {
		o.fail("event_sync", "reconcile")
		log.Errorw("Event reconcile failed", "error", err.Error())
		return err
	}

	o.observe("event_sync", start, 1)
	log.Infow("Event sync complete",
		"event_name", event.Name,
		"team_count", len(event.TeamKeys),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
