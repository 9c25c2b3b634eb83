package syncops

import (
	"context"
	"fmt"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
)

// SyncMatches downloads the match schedule for the current event and
// replaces every cached LightMatch row for that event, recording a
// SyncStatus row for the (lightmatches, event) scope in the same
// transaction.
func (o *Operations) SyncMatches(ctx context.Context, sc Context) error {
	if err := sc.Require(); err != nil {
		return err
	}

	log := logging.WithOperation("match_sync", sc.OrgKey, sc.EventKey)
	log.Infow("Starting match sync")
	start := time.Now()

	matches, err := o.api.GetMatches(ctx, sc.EventKey)
	if err != nil {
		o.fail("match_sync", "fetch")
		log.Errorw("Match fetch failed", "error", err.Error())
		return err
	}

	err = o.store.WriteTx(ctx, func(tx *localstore.Tx) error {
		if err := tx.DeleteWhere(&localstore.LightMatch{}, "event_key = ?", sc.EventKey); err != nil {
			return err
		}
		if len(matches) > 0 {
			if err := tx.BulkAdd(matches); err != nil {
				return err
			}
		}
		return tx.Put(&localstore.SyncStatus{
			Table:  constants.SyncTableLightMatches,
			Filter: fmt.Sprintf("event=%s", sc.EventKey),
			Time:   time.Now(),
		})
	})
	if err != nil {
		o.fail("match_sync", "reconcile")
		log.Errorw("Match reconcile failed", "error", err.Error())
		return err
	}

	o.observe("match_sync", start, len(matches))
	log.Infow("Match sync complete",
		"matches", len(matches),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
