package knowledge

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for lookups of practice ids that are not in
// the loaded dataset.
var ErrNotFound = errors.New("best practice not found")

// ValidationError reports an unrecognized enum value or out-of-range
// parameter at the tool boundary. It is surfaced immediately with no
// partial result.
type ValidationError struct {
	Field   string
	Value   string
	Allowed string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be one of: %s", e.Field, e.Value, e.Allowed)
}

// DataLoadError reports a malformed dataset at startup. It is fatal —
// the store cannot initialize without a consistent dataset.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading dataset %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
