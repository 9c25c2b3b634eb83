package constants

// Sync status bookkeeping identifiers. Each successful sync operation
// upserts one SyncStatus row keyed by (table, filter); these are the
// table identifiers used for that key.
const (
	SyncTableLightMatches  = "lightmatches"
	SyncTableOrgs          = "orgs"
	SyncTableLayout        = "layout"
	SyncTableTeams         = "teams"
	SyncTableEvents        = "events"
	SyncTableMatchScouting = "matchscouting"
)

// Form types for scouting layout elements.
const (
	FormTypeMatch = "matchscouting"
	FormTypePit   = "pitscouting"
)

// LoginPath is the org/user selection entry point unauthenticated
// requests are redirected to.
const LoginPath = "/user/login"
