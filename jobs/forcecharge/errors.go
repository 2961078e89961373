package forcecharge

import "fmt"

// RangeCreationError reports a single group whose force-charge range
// could not be stored. It never aborts the remaining groups of the same
// run; a run only fails when no group could be stored at all.
type RangeCreationError struct {
	GroupIndex int
	Err        error
}

func (e *RangeCreationError) Error() string {
	return fmt.Sprintf("create range for group %d: %v", e.GroupIndex, e.Err)
}

func (e *RangeCreationError) Unwrap() error { return e.Err }
