package syncops

import (
	"context"
	"errors"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"

	"gorm.io/gorm"
)

// SyncTeams downloads the team roster for the current event and
// replaces the matching local rows. It depends on SyncEvent having
// completed first: the cached Event row supplies the team-key list
// whose rows get deleted before the fresh set is inserted.
func (o *Operations) SyncTeams(ctx context.Context, sc Context) error {
	if err := sc.Require(); err != nil {
		return err
	}

	log := logging.WithOperation("team_sync", sc.OrgKey, sc.EventKey)
	log.Infow("Starting team sync")
	start := time.Now()

	// Precondition check up front so a missing prerequisite never
	// costs a network round trip.
	var event localstore.Event
	if err := o.store.First(ctx, &event, "key = ?", sc.EventKey); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			o.fail("team_sync", "prerequisite")
			return &PrerequisiteMissingError{Table: constants.SyncTableEvents, Key: sc.EventKey}
		}
		return err
	}

	teams, err := o.api.GetTeams(ctx, sc.EventKey)
	if err != nil {
		o.fail("team_sync", "fetch")
		log.Errorw("Team fetch failed", "error", err.Error())
		return err
	}

	err = o.store.WriteTx(ctx, func(tx *localstore.Tx) error {
		// Re-resolve the event inside the transaction; the roster it
		// names is the delete scope.
		var ev localstore.Event
		if err := tx.First(&ev, "key = ?", sc.EventKey); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &PrerequisiteMissingError{Table: constants.SyncTableEvents, Key: sc.EventKey}
			}
			return err
		}

		if len(ev.TeamKeys) > 0 {
			if err := tx.DeleteWhere(&localstore.Team{}, "key IN ?", []string(ev.TeamKeys)); err != nil {
				return err
			}
		}

		if len(teams) > 0 {
			if err := tx.BulkAdd(teams); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		o.fail("team_sync", "reconcile")
		log.Errorw("Team reconcile failed", "error", err.Error())
		return err
	}

	o.observe("team_sync", start, len(teams))
	log.Infow("Team sync complete",
		"teams", len(teams),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
