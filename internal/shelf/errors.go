package shelf

import "fmt"

// LoadErrorKind categorizes load failures.
type LoadErrorKind string

const (
	// LoadErrStorage means the slot could not be read.
	LoadErrStorage LoadErrorKind = "storage"

	// LoadErrDecode means the slot held a payload that is not a book
	// collection.
	LoadErrDecode LoadErrorKind = "decode"
)

// LoadError is returned by Load. The in-memory collection is unchanged.
type LoadError struct {
	Kind LoadErrorKind
	Key  string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %s: %v", e.Key, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PersistError is delivered through Pending when a persist fails.
// The in-memory collection keeps the mutation.
type PersistError struct {
	Key   string
	Op    string // mutation that triggered the persist
	Count int    // number of books in the snapshot
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %q after %s (%d books): %v", e.Key, e.Op, e.Count, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
