package entities

import "database/sql"

// Org is a team/organization account scoping users, events, and
// scouting data.
type Org struct {
	OrgKey          string         `db:"org_key" json:"org_key"`
	Nickname        string         `db:"nickname" json:"nickname"`
	TeamNumber      sql.NullInt64  `db:"team_number" json:"team_number"`
	CurrentEventKey sql.NullString `db:"current_event_key" json:"current_event_key"`
}
