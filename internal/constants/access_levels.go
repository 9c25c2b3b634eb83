package constants

import (
	"database/sql/driver"
	"fmt"
)

// AccessLevel is the numeric permission tier assigned to a user. Route
// declarations compare the signed-in user's level against a required
// threshold, so the ordering of these values is load-bearing.
type AccessLevel int

const (
	AccessViewer      AccessLevel = 0
	AccessScouter     AccessLevel = 1
	AccessTeamAdmin   AccessLevel = 2
	AccessGlobalAdmin AccessLevel = 3
)

func (a AccessLevel) String() string {
	switch a {
	case AccessViewer:
		return "viewer"
	case AccessScouter:
		return "scouter"
	case AccessTeamAdmin:
		return "team_admin"
	case AccessGlobalAdmin:
		return "global_admin"
	}
	return fmt.Sprintf("access_level(%d)", int(a))
}

// Valid reports whether a is one of the declared tiers. Routes built
// with a level outside this set are misconfigured.
func (a AccessLevel) Valid() bool {
	return a >= AccessViewer && a <= AccessGlobalAdmin
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (a *AccessLevel) Scan(src interface{}) error {
	if src == nil {
		*a = AccessViewer
		return nil
	}
	switch v := src.(type) {
	case int64:
		*a = AccessLevel(v)
	case []byte:
		var n int
		if _, err := fmt.Sscanf(string(v), "%d", &n); err != nil {
			return fmt.Errorf("AccessLevel: cannot scan %q", v)
		}
		*a = AccessLevel(n)
	default:
		return fmt.Errorf("AccessLevel: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (a AccessLevel) Value() (driver.Value, error) { return int64(a), nil }
