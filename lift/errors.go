package lift

import (
	"errors"
	"fmt"
)

var (
	ErrTimeReversal    = errors.New("cannot advance clock backwards")
	ErrRunnerStopped   = errors.New("runner stopped")
	ErrUnknownElevator = errors.New("unknown elevator")
)

// ConfigurationError reports a configuration value that cannot start a simulation.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s=%v: %s", e.Field, e.Value, e.Reason)
}

// OutOfRangeError rejects a call for a floor the building does not have.
type OutOfRangeError struct {
	Floor Floor
	Max   Floor
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("floor %s out of range [0, %s]", e.Floor, e.Max)
}

// InvalidTransitionError means a lift was asked to do something its state
// does not allow. Seeing one means the dispatcher handed out a busy lift.
type InvalidTransitionError struct {
	LiftID int
	From   State
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Elevator-%d: cannot %s while %s", e.LiftID, e.Action, e.From)
}
