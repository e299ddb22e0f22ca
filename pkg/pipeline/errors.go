package pipeline

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned for a mode name Run does not handle.
var ErrUnknownMode = errors.New("unknown mode")

// StageError records which stage of a run failed and on which file, if any.
type StageError struct {
	Stage string
	Role  string // "foreground", "mask", ... when the stage is per-image
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	switch {
	case e.Role != "" && e.Path != "":
		return fmt.Sprintf("%s %s %s: %v", e.Stage, e.Role, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
	case e.Role != "":
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Role, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
}

func (e *StageError) Unwrap() error { return e.Err }
