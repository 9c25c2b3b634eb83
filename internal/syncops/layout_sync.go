package syncops

import (
	"context"
	"fmt"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"

	"golang.org/x/sync/errgroup"
)

// SyncLayout downloads the org's match-form and pit-form layouts for
// the event's year and replaces the cached layout rows for both form
// types in one transaction. The year is derived from the event key's
// four-digit prefix.
func (o *Operations) SyncLayout(ctx context.Context, sc Context) error {
	if err := sc.Require(); err != nil {
		return err
	}

	year, err := sc.Year()
	if err != nil {
		return err
	}

	log := logging.WithOperation("layout_sync", sc.OrgKey, sc.EventKey)
	log.Infow("Starting layout sync", "year", year)
	start := time.Now()

	var matchLayout, pitLayout []localstore.LayoutElement
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matchLayout, err = o.api.GetLayout(gctx, sc.OrgKey, year, constants.FormTypeMatch)
		return err
	})
	g.Go(func() error {
		var err error
		pitLayout, err = o.api.GetLayout(gctx, sc.OrgKey, year, constants.FormTypePit)
		return err
	})
	if err := g.Wait(); err != nil {
		o.fail("layout_sync", "fetch")
		log.Errorw("Layout fetch failed", "error", err.Error())
		return err
	}

	now := time.Now()
	err = o.store.WriteTx(ctx, func(tx *localstore.Tx) error {
		forms := []struct {
			formType string
			elements []localstore.LayoutElement
		}{
			{constants.FormTypeMatch, matchLayout},
			{constants.FormTypePit, pitLayout},
		}

		for _, form := range forms {
			err := tx.DeleteWhere(&localstore.LayoutElement{},
				"org_key = ? AND year = ? AND form_type = ?", sc.OrgKey, year, form.formType)
			if err != nil {
				return err
			}

			if len(form.elements) > 0 {
				// Server documents may omit scope fields; stamp them so
				// the next delete pass finds these rows.
				for i := range form.elements {
					form.elements[i].RowID = 0
					form.elements[i].OrgKey = sc.OrgKey
					form.elements[i].Year = year
					form.elements[i].FormType = form.formType
				}
				if err := tx.BulkAdd(form.elements); err != nil {
					return err
				}
			}

			status := &localstore.SyncStatus{
				Table:  constants.SyncTableLayout,
				Filter: fmt.Sprintf("org=%s,year=%d,type=%s", sc.OrgKey, year, form.formType),
				Time:   now,
			}
			if err := tx.Put(status); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		o.fail("layout_sync", "reconcile")
		log.Errorw("Layout reconcile failed", "error", err.Error())
		return err
	}

	o.observe("layout_sync", start, len(matchLayout)+len(pitLayout))
	log.Infow("Layout sync complete",
		"match_elements", len(matchLayout),
		"pit_elements", len(pitLayout),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
