// Package syncops implements the per-collection download operations
// that pull authoritative data from the remote scouting API and
// reconcile it into the local store. Each operation fetches fully
// before opening a single write transaction, so a failed fetch leaves
// every local table untouched.
package syncops

import (
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
	"github.com/Joshua-Anderson1/scoutradioz/internal/metrics"
	"github.com/Joshua-Anderson1/scoutradioz/internal/providers"
)

// Operations bundles the sync operations for every collection. The
// store and API client are injected at construction; there is no
// process-wide lazily initialized handle.
type Operations struct {
	store   *localstore.Store
	api     *providers.ScoutAPIProvider
	metrics *metrics.MetricsRegistry
}

// NewOperations creates the sync operation group.
func NewOperations(store *localstore.Store, api *providers.ScoutAPIProvider, metricsReg *metrics.MetricsRegistry) *Operations {
	return &Operations{
		store:   store,
		api:     api,
		metrics: metricsReg,
	}
}

func (o *Operations) observe(op string, start time.Time, records int) {
	if o.metrics == nil {
		return
	}
	o.metrics.SyncOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	o.metrics.SyncRecordsTotal.WithLabelValues(op).Add(float64(records))
}

func (o *Operations) fail(op string, kind string) {
	if o.metrics == nil {
		return
	}
	o.metrics.SyncFailuresTotal.WithLabelValues(op, kind).Inc()
}
