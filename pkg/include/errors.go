package include

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedScript is returned when a fragment opens a script block
	// without closing it.
	ErrUnterminatedScript = errors.New("include: found script start tag, but not end tag")
	// ErrIncludeLimit signals that a pass processed more markers than the
	// configured maximum, usually because a fragment includes itself.
	ErrIncludeLimit = errors.New("include: include limit exceeded")
)

// LoadError wraps a loader failure with the fragment that triggered it. The
// target element is left untouched when a load fails.
type LoadError struct {
	Name     string
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("include: load fragment %q from %s: %v", e.Name, e.Location, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
