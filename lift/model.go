package lift

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reference timing (virtual time; one unit is one millisecond of animation).
const (
	TimePerFloor = 2000 * time.Millisecond
	DoorDwell    = 2500 * time.Millisecond
)

// Configuration bounds.
const (
	MaxFloorLimit   = 100
	MaxLiftCount    = 10
	DefaultMaxFloor = 9
	DefaultLifts    = 3
	firstElevatorID = 1
)

// The floors start at zero
type Floor int

func (f Floor) String() string { return strconv.Itoa(int(f)) }

// distance is the number of floors between f and dest.
func (f Floor) distance(dest Floor) int {
	if f > dest {
		return int(f - dest)
	}
	return int(dest - f)
}

// Direction of a hall call. It does not influence which lift is chosen.
type Direction int

const (
	UP   Direction = 1
	DOWN Direction = -1
)

func (d Direction) valid() bool { return d == UP || d == DOWN }

func (d Direction) String() string {
	switch d {
	case UP:
		return "UP"
	case DOWN:
		return "DOWN"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "up"/"down" in any case, or "u"/"d".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return UP, nil
	case "down", "d":
		return DOWN, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// State of one lift. Lifts cycle Idle -> Moving -> DoorsOpen -> Idle.
type State int

const (
	Idle State = iota
	Moving
	DoorsOpen
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Moving:
		return "Moving"
	case DoorsOpen:
		return "DoorsOpen"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Request is a hall call waiting to be served.
// Seq orders requests submitted at the same virtual time.
type Request struct {
	Floor       Floor
	Dir         Direction
	SubmittedAt time.Duration
	Seq         uint64
}

func (r Request) String() string {
	return fmt.Sprintf("Request(%s %s @%v #%d)", r.Floor, r.Dir, r.SubmittedAt, r.Seq)
}

// Transition is emitted each time a lift changes state.
// For Moving, Floor is the floor being left and Dest the floor it will reach
// at At + travel time. Otherwise Dest equals Floor.
type Transition struct {
	LiftID int
	From   State
	To     State
	Floor  Floor
	Dest   Floor
	At     time.Duration
}

func (t Transition) String() string {
	if t.To == Moving {
		return fmt.Sprintf("Elevator-%d %s->%s from %s to %s @%v", t.LiftID, t.From, t.To, t.Floor, t.Dest, t.At)
	}
	return fmt.Sprintf("Elevator-%d %s->%s at %s @%v", t.LiftID, t.From, t.To, t.Floor, t.At)
}

// LiftView is a read-only copy of one lift's state.
type LiftView struct {
	ID        int
	Floor     Floor
	State     State
	DoorsOpen bool
	Dest      Floor // meaningful only when HasDest
	HasDest   bool
}

func (v LiftView) String() string {
	if v.HasDest {
		return fmt.Sprintf("Elevator-%d %s floor %s -> %s", v.ID, v.State, v.Floor, v.Dest)
	}
	return fmt.Sprintf("Elevator-%d %s floor %s", v.ID, v.State, v.Floor)
}

// HallCall is a lit floor button: at least one queued request for Floor in Dir.
type HallCall struct {
	Floor Floor
	Dir   Direction
}

// Status bundles what a presentation layer needs for one frame.
type Status struct {
	RunID   string
	Now     time.Duration
	Lifts   []LiftView
	Pending int
	Calls   []HallCall
}
