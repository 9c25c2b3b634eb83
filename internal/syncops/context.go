package syncops

import "strconv"

// Context is the resolved (org, event) scope a sync operation runs
// under. Both keys must be present before any network call is made.
type Context struct {
	OrgKey   string
	EventKey string
}

// Require validates that the scope is fully resolved.
func (c Context) Require() error {
	switch {
	case c.OrgKey == "" && c.EventKey == "":
		return &MissingContextError{Missing: "org_key, event_key"}
	case c.OrgKey == "":
		return &MissingContextError{Missing: "org_key"}
	case c.EventKey == "":
		return &MissingContextError{Missing: "event_key"}
	}
	return nil
}

// Year derives the competition year from the first four characters of
// the event key (e.g. "2024miwayne" -> 2024).
func (c Context) Year() (int, error) {
	if len(c.EventKey) < 4 {
		return 0, &InvalidEventKeyError{EventKey: c.EventKey}
	}
	year, err := strconv.Atoi(c.EventKey[:4])
	if err != nil {
		return 0, &InvalidEventKeyError{EventKey: c.EventKey}
	}
	return year, nil
}
