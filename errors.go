package panel

import (
	"fmt"
	"time"
)

// TransportError reports a failed bus operation. The remaining command
// sequence is aborted; the panel is left in an undefined state and must be
// reinitialized with a full Prepare cycle.
type TransportError struct {
	Op  string // "write", "reset"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("panel: transport %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SequenceError wraps the error of a failed command sequence step with the
// index of the step, counted from zero in declared order.
type SequenceError struct {
	Step int
	Cmd  Command
	Err  error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("panel: step %d (%s): %v", e.Step, e.Cmd, e.Err)
}

func (e *SequenceError) Unwrap() error { return e.Err }

// PageMismatchError reports a register write addressed to a page that is not
// currently selected. This is a defect in the command table, not a runtime
// condition: correctly generated sequences never trigger it.
type PageMismatchError struct {
	Reg     byte
	Page    int // page the write was declared for
	Current int // page selected on the controller, pageUndefined before reset
}

func (e *PageMismatchError) Error() string {
	if e.Current == pageUndefined {
		return fmt.Sprintf("panel: register %#02x belongs to page %d, no page selected", e.Reg, e.Page)
	}
	return fmt.Sprintf("panel: register %#02x belongs to page %d, page %d is selected", e.Reg, e.Page, e.Current)
}

// InvalidStateTransitionError reports a lifecycle entry point called from a
// state it is not defined for.
type InvalidStateTransitionError struct {
	Op   string
	From State
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("panel: cannot %s while %s", e.Op, e.From)
}

// TimingError reports a lifecycle transition that exceeded the configured
// watchdog budget. The controller instance is unusable afterwards; every
// later call returns the same error and the instance must be discarded.
type TimingError struct {
	Op     string
	Budget time.Duration
}

func (e *TimingError) Error() string {
	return fmt.Sprintf("panel: %s exceeded watchdog budget of %s", e.Op, e.Budget)
}
