package syncops

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"

	"gorm.io/gorm"
)

// ScoutingResult reports what a match scouting sync did. Records with
// pending local edits are never overwritten by server data; they are
// counted so the UI can tell the scouter what was held back.
type ScoutingResult struct {
	Merged            int
	SkippedLocalEdits int
}

// SyncMatchScouting downloads the org's match scouting assignments for
// the current event and merges them into the local store by composite
// match+team key. Existing rows with matching keys are overwritten
// field by field unless they carry uncommitted local edits, in which
// case the local copy wins and the record is skipped.
func (o *Operations) SyncMatchScouting(ctx context.Context, sc Context) (*ScoutingResult, error) {
	if err := sc.Require(); err != nil {
		return nil, err
	}

	log := logging.WithOperation("matchscouting_sync", sc.OrgKey, sc.EventKey)
	log.Infow("Starting match scouting sync")
	start := time.Now()

	records, err := o.api.GetMatchScoutingAssignments(ctx, sc.OrgKey, sc.EventKey)
	if err != nil {
		o.fail("matchscouting_sync", "fetch")
		log.Errorw("Match scouting fetch failed", "error", err.Error())
		return nil, err
	}

	result := &ScoutingResult{}
	err = o.store.WriteTx(ctx, func(tx *localstore.Tx) error {
		for i := range records {
			rec := &records[i]
			if rec.MatchTeamKey == "" {
				rec.MatchTeamKey = localstore.MatchTeamKey(rec.MatchKey, rec.TeamKey)
			}

			var existing localstore.MatchScoutingRecord
			err := tx.First(&existing, "match_team_key = ?", rec.MatchTeamKey)
			switch {
			case err == nil:
				if existing.LocalEditedAt != nil {
					result.SkippedLocalEdits++
					continue
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				// new assignment
			default:
				return err
			}

			if err := tx.Put(rec); err != nil {
				return err
			}
			result.Merged++
		}

		return tx.Put(&localstore.SyncStatus{
			Table:  constants.SyncTableOrgs,
			Filter: fmt.Sprintf("org=%s,event=%s", sc.OrgKey, sc.EventKey),
			Time:   time.Now(),
		})
	})
	if err != nil {
		o.fail("matchscouting_sync", "reconcile")
		log.Errorw("Match scouting reconcile failed", "error", err.Error())
		return nil, err
	}

	o.observe("matchscouting_sync", start, result.Merged)
	log.Infow("Match scouting sync complete",
		"merged", result.Merged,
		"skipped_local_edits", result.SkippedLocalEdits,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
