package lift

import (
	"time"
)

/*
	Elevator lifecycle

	Idle --Assign(dest)--> Moving --arrive--> DoorsOpen --closeDoors--> Idle

	Assign to the floor the lift is already sitting on needs no travel: the
	lift is Moving for zero time and arrives on the next clock step.

	Travel takes |dest - floor| * timePerFloor. The floor only changes on
	arrival, and then by the full distance. A lift is never between floors
	as far as the rest of the system is concerned.

	arrive and closeDoors run from the Clock, never from Assign itself.
*/

// timing is shared by every lift in a fleet.
type timing struct {
	perFloor time.Duration
	dwell    time.Duration
}

// Elevator is one lift car.
type Elevator struct {
	id      int
	timing  timing
	floor   Floor // Only updated on arrival.
	state   State
	dest    Floor // Valid iff state == Moving.
	hasDest bool
}

func newElevator(id int, t timing) *Elevator {
	return &Elevator{id: id, timing: t, floor: 0, state: Idle}
}

func (e *Elevator) ID() int             { return e.id }
func (e *Elevator) Floor() Floor        { return e.floor }
func (e *Elevator) State() State        { return e.state }
func (e *Elevator) Dest() (Floor, bool) { return e.dest, e.hasDest }

func (e *Elevator) view() LiftView {
	return LiftView{
		ID:        e.id,
		Floor:     e.floor,
		State:     e.state,
		DoorsOpen: e.state == DoorsOpen,
		Dest:      e.dest,
		HasDest:   e.hasDest,
	}
}

// travelTime to dest from the current floor.
func (e *Elevator) travelTime(dest Floor) time.Duration {
	return time.Duration(e.floor.distance(dest)) * e.timing.perFloor
}

// Assign sends an idle lift to dest and schedules its arrival on clk.
func (e *Elevator) Assign(dest Floor, clk *Clock) (Transition, error) {
	if e.state != Idle {
		return Transition{}, &InvalidTransitionError{LiftID: e.id, From: e.state, Action: "assign"}
	}

	travel := e.travelTime(dest)
	e.state = Moving
	e.dest = dest
	e.hasDest = true
	clk.Schedule(travel, arriveEvent{e.id})
	Log.Debug().Msgf("Elevator-%d at %s going to %s, arriving in %v", e.id, e.floor, dest, travel)
	return Transition{LiftID: e.id, From: Idle, To: Moving, Floor: e.floor, Dest: dest, At: clk.Now()}, nil
}

// arrive lands a moving lift on its destination and schedules the doors to close.
func (e *Elevator) arrive(clk *Clock) (Transition, error) {
	if e.state != Moving {
		return Transition{}, &InvalidTransitionError{LiftID: e.id, From: e.state, Action: "arrive"}
	}
	e.floor = e.dest
	e.dest = 0
	e.hasDest = false
	e.state = DoorsOpen
	clk.Schedule(e.timing.dwell, closeDoorsEvent{e.id})
	Log.Debug().Msgf("Elevator-%d stopped at %s, doors open", e.id, e.floor)
	return Transition{LiftID: e.id, From: Moving, To: DoorsOpen, Floor: e.floor, Dest: e.floor, At: clk.Now()}, nil
}

func (e *Elevator) closeDoors(clk *Clock) (Transition, error) {
	if e.state != DoorsOpen {
		return Transition{}, &InvalidTransitionError{LiftID: e.id, From: e.state, Action: "close doors"}
	}
	e.state = Idle
	Log.Debug().Msgf("Elevator-%d closed doors at %s", e.id, e.floor)
	return Transition{LiftID: e.id, From: DoorsOpen, To: Idle, Floor: e.floor, Dest: e.floor, At: clk.Now()}, nil
}
