package localstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// All identifiers that originate as server-side object ids are stored as
// plain strings. The canonical id type never crosses the client boundary.

// StringList stores a list of string keys in a single text column.
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("StringList: cannot scan type %T", src)
	}
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// JSONMap stores free-form scouted data fields in a single text column.
type JSONMap map[string]interface{}

// Scan implements the sql.Scanner interface
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), m)
	case []byte:
		return json.Unmarshal(v, m)
	default:
		return fmt.Errorf("JSONMap: cannot scan type %T", src)
	}
}

// Value implements the driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// Event is a single competition instance, identified by a year-prefixed
// key. Replaced wholesale on re-sync, never mutated in place.
type Event struct {
	Key      string     `gorm:"column:key;primaryKey" json:"key"`
	Name     string     `gorm:"column:name" json:"name"`
	Year     int        `gorm:"column:year" json:"year"`
	TeamKeys StringList `gorm:"column:team_keys;type:text" json:"team_keys"`
}

func (Event) TableName() string { return "events" }

// Team is a participating team, bulk-replaced per event on sync.
type Team struct {
	Key        string `gorm:"column:key;primaryKey" json:"key"`
	TeamNumber int    `gorm:"column:team_number" json:"team_number"`
	Name       string `gorm:"column:name" json:"name"`
	Nickname   string `gorm:"column:nickname" json:"nickname"`
	City       string `gorm:"column:city" json:"city"`
	StateProv  string `gorm:"column:state_prov" json:"state_prov"`
	Country    string `gorm:"column:country" json:"country"`
}

func (Team) TableName() string { return "teams" }

// LightMatch is a denormalized match summary used for offline schedule
// display.
type LightMatch struct {
	Key         string     `gorm:"column:key;primaryKey" json:"key"`
	EventKey    string     `gorm:"column:event_key;index" json:"event_key"`
	CompLevel   string     `gorm:"column:comp_level" json:"comp_level"`
	SetNumber   int        `gorm:"column:set_number" json:"set_number"`
	MatchNumber int        `gorm:"column:match_number" json:"match_number"`
	RedTeams    StringList `gorm:"column:red_teams;type:text" json:"red_teams"`
	BlueTeams   StringList `gorm:"column:blue_teams;type:text" json:"blue_teams"`
	RedScore    int        `gorm:"column:red_score" json:"red_score"`
	BlueScore   int        `gorm:"column:blue_score" json:"blue_score"`
	Time        int64      `gorm:"column:time" json:"time"`
}

func (LightMatch) TableName() string { return "lightmatches" }

// ScouterRecord is a small id+name pair identifying a scouter.
type ScouterRecord struct {
	ID   string `gorm:"column:id" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

// MatchScoutingRecord is one assignment of a scouting form to a team for
// a given match. Merged by composite key on sync rather than wholesale
// replaced, so uncommitted local edits are not clobbered.
type MatchScoutingRecord struct {
	MatchTeamKey   string        `gorm:"column:match_team_key;primaryKey" json:"match_team_key"`
	OrgKey         string        `gorm:"column:org_key;index" json:"org_key"`
	EventKey       string        `gorm:"column:event_key;index" json:"event_key"`
	MatchKey       string        `gorm:"column:match_key" json:"match_key"`
	TeamKey        string        `gorm:"column:team_key" json:"team_key"`
	Year           int           `gorm:"column:year" json:"year"`
	AssignedScorer ScouterRecord `gorm:"embedded;embeddedPrefix:assigned_scorer_" json:"assigned_scorer"`
	ActualScorer   ScouterRecord `gorm:"embedded;embeddedPrefix:actual_scorer_" json:"actual_scorer"`
	Data           JSONMap       `gorm:"column:data;type:text" json:"data"`
	Time           int64         `gorm:"column:time" json:"time"`

	// LocalEditedAt is set by the scouting-entry UI when a record has
	// been modified on this device but not yet submitted. Sync skips
	// records where it is non-nil. Never transmitted.
	LocalEditedAt *time.Time `gorm:"column:local_edited_at" json:"-"`
}

func (MatchScoutingRecord) TableName() string { return "matchscouting" }

// MatchTeamKey derives the composite primary key of a scouting record
// deterministically from its component fields.
func MatchTeamKey(matchKey, teamKey string) string {
	return matchKey + "_" + teamKey
}

// LayoutElement is a single configurable field definition for a scouting
// form, scoped to organization + year + form type. Layout rows matching
// a scope are wholesale deleted and re-inserted on sync, since
// server-side edits may remove fields.
type LayoutElement struct {
	RowID     uint       `gorm:"column:row_id;primaryKey;autoIncrement" json:"-"`
	ElementID string     `gorm:"column:element_id" json:"id"`
	OrgKey    string     `gorm:"column:org_key;index:idx_layout_scope" json:"org_key"`
	Year      int        `gorm:"column:year;index:idx_layout_scope" json:"year"`
	FormType  string     `gorm:"column:form_type;index:idx_layout_scope" json:"form_type"`
	Type      string     `gorm:"column:type" json:"type"`
	Label     string     `gorm:"column:label" json:"label"`
	Options   StringList `gorm:"column:options;type:text" json:"options"`
	Order     int        `gorm:"column:ord" json:"order"`
}

func (LayoutElement) TableName() string { return "layout" }

// SyncStatus records when a given local table/scope was last refreshed
// from the server. One row per (table, filter) pair, always upserted
// after a successful sync.
type SyncStatus struct {
	Table  string    `gorm:"column:table_name;primaryKey" json:"table"`
	Filter string    `gorm:"column:filter;primaryKey" json:"filter"`
	Time   time.Time `gorm:"column:time" json:"time"`
}

func (SyncStatus) TableName() string { return "syncstatus" }

// LightUser is a minimal user identity carried between devices over an
// out-of-band channel (QR code). It is never fetched over the network
// sync path.
type LightUser struct {
	ID       string `gorm:"column:id;primaryKey" json:"id"`
	OrgKey   string `gorm:"column:org_key" json:"org_key"`
	Name     string `gorm:"column:name" json:"name"`
	RoleKey  string `gorm:"column:role_key" json:"role_key"`
	Present  bool   `gorm:"column:present" json:"present"`
	Assigned bool   `gorm:"column:assigned" json:"assigned"`
}

func (LightUser) TableName() string { return "lightusers" }

// schemaMeta is the single bookkeeping row holding the persisted schema
// version.
type schemaMeta struct {
	ID        int       `gorm:"column:id;primaryKey"`
	Version   int       `gorm:"column:version"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (schemaMeta) TableName() string { return "schema_meta" }
