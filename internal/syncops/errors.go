package syncops

import "fmt"

// MissingContextError means the required org/event scope was absent
// before a sync was invoked. The UI layer must resolve context first;
// no network call has been made.
type MissingContextError struct {
	Missing string
}

func (e *MissingContextError) Error() string {
	return fmt.Sprintf("sync: required context missing: %s", e.Missing)
}

// PrerequisiteMissingError means a dependent local record was not
// present before a dependent sync ran (e.g. Team sync before Event
// sync). The caller must trigger the prerequisite sync first.
type PrerequisiteMissingError struct {
	Table string
	Key   string
}

func (e *PrerequisiteMissingError) Error() string {
	return fmt.Sprintf("sync: prerequisite record %s/%s not present locally", e.Table, e.Key)
}

// InvalidEventKeyError means an event key does not encode a parseable
// year. This indicates upstream data corruption.
type InvalidEventKeyError struct {
	EventKey string
}

func (e *InvalidEventKeyError) Error() string {
	return fmt.Sprintf("sync: event key %q does not encode a valid year", e.EventKey)
}
