package syncops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
	"github.com/Joshua-Anderson1/scoutradioz/internal/providers"
)

func newTestStore(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(":memory:", localstore.SchemaVersion)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestAPI(t *testing.T, handler http.Handler) *providers.ScoutAPIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &providers.ScoutAPIProvider{
		BaseURL: server.URL,
		Client:  &http.Client{},
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("Failed to encode response: %v", err)
	}
}

func countRows(t *testing.T, store *localstore.Store, model interface{}) int64 {
	t.Helper()
	var n int64
	err := store.ReadTx(context.Background(), func(tx *localstore.Tx) error {
		var err error
		n, err = tx.Count(model, "")
		return err
	})
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

func seedEvent(t *testing.T, store *localstore.Store, event *localstore.Event) {
	t.Helper()
	err := store.WriteTx(context.Background(), func(tx *localstore.Tx) error {
		return tx.Add(event)
	})
	if err != nil {
		t.Fatalf("Failed to seed event: %v", err)
	}
}

var testScope = Context{OrgKey: "frc102", EventKey: "2024miwayne"}

func TestContext_Require(t *testing.T) {
	cases := []struct {
		name    string
		scope   Context
		missing string
	}{
		{"both missing", Context{}, "org_key, event_key"},
		{"org missing", Context{EventKey: "2024miwayne"}, "org_key"},
		{"event missing", Context{OrgKey: "frc102"}, "event_key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.scope.Require()
			var missingErr *MissingContextError
			if !errors.As(err, &missingErr) {
				t.Fatalf("Expected MissingContextError, got %v", err)
			}
			if missingErr.Missing != tc.missing {
				t.Errorf("Expected missing %q, got %q", tc.missing, missingErr.Missing)
			}
		})
	}

	if err := testScope.Require(); err != nil {
		t.Errorf("Expected complete scope to pass, got %v", err)
	}
}

func TestContext_Year(t *testing.T) {
	year, err := Context{OrgKey: "frc102", EventKey: "2024miwayne"}.Year()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if year != 2024 {
		t.Errorf("Expected year 2024, got %d", year)
	}

	for _, key := range []string{"abcdwayne", "24x"} {
		_, err := Context{OrgKey: "frc102", EventKey: key}.Year()
		var keyErr *InvalidEventKeyError
		if !errors.As(err, &keyErr) {
			t.Fatalf("Expected InvalidEventKeyError for %q, got %v", key, err)
		}
	}
}

func TestSyncEvent_InsertsEvent(t *testing.T) {
	store := newTestStore(t)
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, localstore.Event{
			Key:      "2024miwayne",
			Name:     "Wayne State District",
			Year:     2024,
			TeamKeys: localstore.StringList{"frc1", "frc2"},
		})
	}))
	ops := NewOperations(store, api, nil)

	if err := ops.SyncEvent(context.Background(), testScope); err != nil {
		t.Fatalf("Expected sync to succeed, got %v", err)
	}

	var event localstore.Event
	if err := store.First(context.Background(), &event, "key = ?", "2024miwayne"); err != nil {
		t.Fatalf("Expected event to be cached, got %v", err)
	}
	if event.Name != "Wayne State District" {
		t.Errorf("Expected event name to be stored, got %q", event.Name)
	}
}

func TestSyncEvent_RerunConflicts(t *testing.T) {
	store := newTestStore(t)
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, localstore.Event{Key: "2024miwayne", Year: 2024})
	}))
	ops := NewOperations(store, api, nil)

	if err := ops.SyncEvent(context.Background(), testScope); err != nil {
		t.Fatalf("First sync failed: %v", err)
	}

	err := ops.SyncEvent(context.Background(), testScope)
	var conflict *localstore.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError on re-run, got %v", err)
	}
	if conflict.Table != "events" {
		t.Errorf("Expected conflict on events table, got %q", conflict.Table)
	}
}

func TestSyncTeams_BeforeEventFailsWithoutNetwork(t *testing.T) {
	store := newTestStore(t)
	requests := 0
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeJSON(t, w, []localstore.Team{})
	}))
	ops := NewOperations(store, api, nil)

	err := ops.SyncTeams(context.Background(), testScope)
	var prereq *PrerequisiteMissingError
	if !errors.As(err, &prereq) {
		t.Fatalf("Expected PrerequisiteMissingError, got %v", err)
	}
	if prereq.Table != constants.SyncTableEvents {
		t.Errorf("Expected events prerequisite, got %q", prereq.Table)
	}
	if requests != 0 {
		t.Errorf("Expected no network calls, got %d", requests)
	}
	if n := countRows(t, store, &localstore.Team{}); n != 0 {
		t.Errorf("Expected no team rows, got %d", n)
	}
}

func TestSyncTeams_ReplacesRosterScope(t *testing.T) {
	store := newTestStore(t)
	seedEvent(t, store, &localstore.Event{
		Key:      "2024miwayne",
		Year:     2024,
		TeamKeys: localstore.StringList{"frc1", "frc2"},
	})

	// Stale roster from an earlier sync.
	err := store.WriteTx(context.Background(), func(tx *localstore.Tx) error {
		return tx.BulkAdd([]localstore.Team{
			{Key: "frc1", TeamNumber: 1, Nickname: "Old Name"},
			{Key: "frc2", TeamNumber: 2, Nickname: "Departed"},
		})
	})
	if err != nil {
		t.Fatalf("Failed to seed teams: %v", err)
	}

	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []localstore.Team{
			{Key: "frc1", TeamNumber: 1, Nickname: "New Name"},
			{Key: "frc3", TeamNumber: 3, Nickname: "Joined"},
		})
	}))
	ops := NewOperations(store, api, nil)

	if err := ops.SyncTeams(context.Background(), testScope); err != nil {
		t.Fatalf("Expected sync to succeed, got %v", err)
	}

	var teams []localstore.Team
	if err := store.Find(context.Background(), &teams, ""); err != nil {
		t.Fatalf("Failed to read teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("Expected 2 teams after sync, got %d", len(teams))
	}
	byKey := map[string]localstore.Team{}
	for _, team := range teams {
		byKey[team.Key] = team
	}
	if byKey["frc1"].Nickname != "New Name" {
		t.Errorf("Expected frc1 nickname replaced, got %q", byKey["frc1"].Nickname)
	}
	if _, ok := byKey["frc2"]; ok {
		t.Error("Expected frc2 to be removed from roster")
	}
	if _, ok := byKey["frc3"]; !ok {
		t.Error("Expected frc3 to be added to roster")
	}
}

func TestSyncTeams_RerunIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	seedEvent(t, store, &localstore.Event{
		Key:      "2024miwayne",
		Year:     2024,
		TeamKeys: localstore.StringList{"frc1", "frc2"},
	})

	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []localstore.Team{
			{Key: "frc1", TeamNumber: 1},
			{Key: "frc2", TeamNumber: 2},
		})
	}))
	ops := NewOperations(store, api, nil)

	for i := 0; i < 3; i++ {
		if err := ops.SyncTeams(context.Background(), testScope); err != nil {
			t.Fatalf("Run %d failed: %v", i+1, err)
		}
	}
	if n := countRows(t, store, &localstore.Team{}); n != 2 {
		t.Errorf("Expected 2 teams after repeated syncs, got %d", n)
	}
}

func TestSyncMatches_FailedFetchLeavesTablesUntouched(t *testing.T) {
	store := newTestStore(t)
	err := store.WriteTx(context.Background(), func(tx *localstore.Tx) error {
		return tx.Add(&localstore.LightMatch{
			Key:      "2024miwayne_qm1",
			EventKey: "2024miwayne",
		})
	})
	if err != nil {
		t.Fatalf("Failed to seed match: %v", err)
	}

	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	ops := NewOperations(store, api, nil)

	err = ops.SyncMatches(context.Background(), testScope)
	var fetchErr *providers.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected FetchError, got %v", err)
	}

	if n := countRows(t, store, &localstore.LightMatch{}); n != 1 {
		t.Errorf("Expected existing match untouched, got %d rows", n)
	}
	if n := countRows(t, store, &localstore.SyncStatus{}); n != 0 {
		t.Errorf("Expected no sync status written on failed fetch, got %d rows", n)
	}
}

func TestSyncMatches_SingleStatusRowWithIncreasingTime(t *testing.T) {
	store := newTestStore(t)
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []localstore.LightMatch{
			{Key: "2024miwayne_qm1", EventKey: "2024miwayne", CompLevel: "qm", MatchNumber: 1},
			{Key: "2024miwayne_qm2", EventKey: "2024miwayne", CompLevel: "qm", MatchNumber: 2},
		})
	}))
	ops := NewOperations(store, api, nil)

	if err := ops.SyncMatches(context.Background(), testScope); err != nil {
		t.Fatalf("First sync failed: %v", err)
	}

	var first localstore.SyncStatus
	err := store.First(context.Background(), &first,
		"table_name = ? AND filter = ?", constants.SyncTableLightMatches, "event=2024miwayne")
	if err != nil {
		t.Fatalf("Expected sync status row, got %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := ops.SyncMatches(context.Background(), testScope); err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}

	if n := countRows(t, store, &localstore.SyncStatus{}); n != 1 {
		t.Fatalf("Expected exactly one sync status row, got %d", n)
	}

	var second localstore.SyncStatus
	err = store.First(context.Background(), &second,
		"table_name = ? AND filter = ?", constants.SyncTableLightMatches, "event=2024miwayne")
	if err != nil {
		t.Fatalf("Expected sync status row after re-run, got %v", err)
	}
	if !second.Time.After(first.Time) {
		t.Errorf("Expected timestamp to advance, got %v then %v", first.Time, second.Time)
	}

	if n := countRows(t, store, &localstore.LightMatch{}); n != 2 {
		t.Errorf("Expected 2 matches after repeated syncs, got %d", n)
	}
}

func TestSyncMatchScouting_UpsertPreservesRowCount(t *testing.T) {
	store := newTestStore(t)
	serverRecords := []localstore.MatchScoutingRecord{
		{
			OrgKey:   "frc102",
			EventKey: "2024miwayne",
			MatchKey: "2024miwayne_qm1",
			TeamKey:  "frc1",
			Year:     2024,
		},
		{
			OrgKey:   "frc102",
			EventKey: "2024miwayne",
			MatchKey: "2024miwayne_qm1",
			TeamKey:  "frc2",
			Year:     2024,
		},
	}
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, serverRecords)
	}))
	ops := NewOperations(store, api, nil)

	result, err := ops.SyncMatchScouting(context.Background(), testScope)
	if err != nil {
		t.Fatalf("First sync failed: %v", err)
	}
	if result.Merged != 2 {
		t.Errorf("Expected 2 merged, got %d", result.Merged)
	}

	// Full key overlap on a re-run must not grow the table.
	result, err = ops.SyncMatchScouting(context.Background(), testScope)
	if err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}
	if result.Merged != 2 {
		t.Errorf("Expected 2 merged on re-run, got %d", result.Merged)
	}
	if n := countRows(t, store, &localstore.MatchScoutingRecord{}); n != 2 {
		t.Errorf("Expected 2 scouting rows after re-run, got %d", n)
	}
}

func TestSyncMatchScouting_LocalEditsWin(t *testing.T) {
	store := newTestStore(t)
	edited := time.Now().Add(-time.Minute)
	err := store.WriteTx(context.Background(), func(tx *localstore.Tx) error {
		return tx.Add(&localstore.MatchScoutingRecord{
			MatchTeamKey:  localstore.MatchTeamKey("2024miwayne_qm1", "frc1"),
			OrgKey:        "frc102",
			EventKey:      "2024miwayne",
			MatchKey:      "2024miwayne_qm1",
			TeamKey:       "frc1",
			Year:          2024,
			Data:          localstore.JSONMap{"autoPoints": float64(12)},
			LocalEditedAt: &edited,
		})
	})
	if err != nil {
		t.Fatalf("Failed to seed edited record: %v", err)
	}

	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []localstore.MatchScoutingRecord{
			{
				OrgKey:   "frc102",
				EventKey: "2024miwayne",
				MatchKey: "2024miwayne_qm1",
				TeamKey:  "frc1",
				Year:     2024,
			},
			{
				OrgKey:   "frc102",
				EventKey: "2024miwayne",
				MatchKey: "2024miwayne_qm1",
				TeamKey:  "frc2",
				Year:     2024,
			},
		})
	}))
	ops := NewOperations(store, api, nil)

	result, err := ops.SyncMatchScouting(context.Background(), testScope)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if result.SkippedLocalEdits != 1 {
		t.Errorf("Expected 1 skipped local edit, got %d", result.SkippedLocalEdits)
	}
	if result.Merged != 1 {
		t.Errorf("Expected 1 merged, got %d", result.Merged)
	}

	var kept localstore.MatchScoutingRecord
	err = store.First(context.Background(), &kept,
		"match_team_key = ?", localstore.MatchTeamKey("2024miwayne_qm1", "frc1"))
	if err != nil {
		t.Fatalf("Failed to read edited record: %v", err)
	}
	if kept.LocalEditedAt == nil {
		t.Error("Expected local edit marker to survive sync")
	}
	if kept.Data["autoPoints"] != float64(12) {
		t.Errorf("Expected local form data preserved, got %v", kept.Data)
	}
}

func TestSyncLayout_DerivesYearAndReplacesBothForms(t *testing.T) {
	store := newTestStore(t)

	// Stale layout rows from last season's forms.
	err := store.WriteTx(context.Background(), func(tx *localstore.Tx) error {
		return tx.BulkAdd([]localstore.LayoutElement{
			{ElementID: "old1", OrgKey: "frc102", Year: 2024, FormType: constants.FormTypeMatch},
			{ElementID: "old2", OrgKey: "frc102", Year: 2024, FormType: constants.FormTypePit},
			{ElementID: "other", OrgKey: "frc999", Year: 2024, FormType: constants.FormTypeMatch},
		})
	})
	if err != nil {
		t.Fatalf("Failed to seed layout: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/frc102/2024/layout/match", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []localstore.LayoutElement{
			{ElementID: "autoSpeaker", Type: "counter", Label: "Auto Speaker Notes", Order: 1},
			{ElementID: "teleopAmp", Type: "counter", Label: "Teleop Amp Notes", Order: 2},
		})
	})
	mux.HandleFunc("/orgs/frc102/2024/layout/pit", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []localstore.LayoutElement{
			{ElementID: "drivetrain", Type: "multiselect", Label: "Drivetrain", Order: 1},
		})
	})
	api := newTestAPI(t, mux)
	ops := NewOperations(store, api, nil)

	if err := ops.SyncLayout(context.Background(), testScope); err != nil {
		t.Fatalf("Expected sync to succeed, got %v", err)
	}

	var mine []localstore.LayoutElement
	if err := store.Find(context.Background(), &mine, "org_key = ?", "frc102"); err != nil {
		t.Fatalf("Failed to read layout: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("Expected 3 layout elements for org, got %d", len(mine))
	}
	for _, element := range mine {
		if element.Year != 2024 || element.OrgKey != "frc102" {
			t.Errorf("Expected scope fields stamped, got %+v", element)
		}
	}

	// Another org's layout is outside the delete scope.
	var other []localstore.LayoutElement
	if err := store.Find(context.Background(), &other, "org_key = ?", "frc999"); err != nil {
		t.Fatalf("Failed to read other org layout: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected other org layout untouched, got %d rows", len(other))
	}

	// One status row per form type for the scope.
	var statuses []localstore.SyncStatus
	if err := store.Find(context.Background(), &statuses, "table_name = ?", constants.SyncTableLayout); err != nil {
		t.Fatalf("Failed to read sync statuses: %v", err)
	}
	if len(statuses) != 2 {
		t.Errorf("Expected 2 layout status rows, got %d", len(statuses))
	}
}

func TestSyncLayout_InvalidEventKey(t *testing.T) {
	store := newTestStore(t)
	requests := 0
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeJSON(t, w, []localstore.LayoutElement{})
	}))
	ops := NewOperations(store, api, nil)

	err := ops.SyncLayout(context.Background(), Context{OrgKey: "frc102", EventKey: "abcdwayne"})
	var keyErr *InvalidEventKeyError
	if !errors.As(err, &keyErr) {
		t.Fatalf("Expected InvalidEventKeyError, got %v", err)
	}
	if requests != 0 {
		t.Errorf("Expected no network calls for invalid key, got %d", requests)
	}
}
