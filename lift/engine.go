package lift

import (
	"fmt"
	"iter"
	"time"

	"github.com/delliston/liftsim/internal/logger"
	"github.com/tiendc/go-deepcopy"
)

var Log = logger.GetLogger()

// Engine runs one building: it owns the fleet, the pending queue and the
// clock, and is the only thing that mutates them. Nothing happens between
// calls; lifts move only when Tick or AdvanceTo is called.
//
// An Engine is not safe for concurrent use. Use a Runner to drive one from
// several goroutines.
type Engine struct {
	cfg       Config
	clock     *Clock
	fleet     *Fleet
	pending   *PendingQueue
	callsUp   *FloorSet
	callsDown *FloorSet
	history   []Transition
	listeners []func(Transition)
	seq       uint64
}

// NewEngine validates cfg and builds a building with every lift idle at floor 0.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withRunID()
	e := &Engine{
		cfg:       cfg,
		clock:     NewClock(),
		pending:   NewPendingQueue(),
		callsUp:   newFloorSet(cfg.MaxFloor + 1),
		callsDown: newFloorSet(cfg.MaxFloor + 1),
	}
	e.fleet = newFleet(cfg.LiftCount, cfg.timing())
	Log.Info().Msgf("Run %s: %d lifts, floors 0-%d, %v per floor, %v dwell",
		cfg.RunID, cfg.LiftCount, cfg.MaxFloor, cfg.TimePerFloor, cfg.DoorDwell)
	return e, nil
}

func (e *Engine) Config() Config       { return e.cfg }
func (e *Engine) Now() time.Duration   { return e.clock.Now() }
func (e *Engine) PendingCount() int    { return e.pending.Len() }
func (e *Engine) Snapshot() []LiftView { return e.fleet.Lifts() }

// Idle reports whether nothing is queued or scheduled.
func (e *Engine) Idle() bool {
	return e.pending.Len() == 0 && e.clock.Pending() == 0
}

// OnTransition registers fn to be called as each transition happens.
// fn runs on the engine's goroutine and may call back into the engine.
func (e *Engine) OnTransition(fn func(Transition)) {
	e.listeners = append(e.listeners, fn)
}

// SubmitRequest hands a hall call to the nearest idle lift, or queues it
// when every lift is busy. A call never overtakes one already queued.
func (e *Engine) SubmitRequest(floor Floor, dir Direction) error {
	if floor < 0 || floor > Floor(e.cfg.MaxFloor) {
		Log.Warn().Msgf("Rejected call at floor %s", floor)
		return &OutOfRangeError{Floor: floor, Max: Floor(e.cfg.MaxFloor)}
	}
	if !dir.valid() {
		return fmt.Errorf("call at floor %s: invalid direction %s", floor, dir)
	}

	e.seq++
	req := Request{Floor: floor, Dir: dir, SubmittedAt: e.clock.Now(), Seq: e.seq}
	Log.Debug().Msgf("Received %v", req)

	assigned := false
	if e.pending.Len() == 0 {
		var err error
		if assigned, err = e.dispatch(req); err != nil {
			return err
		}
	}
	if !assigned {
		e.pending.Push(req)
		e.calls(dir).add(floor)
		Log.Info().Msgf("No idle lift for %v, %d pending", req, e.pending.Len())
	}
	return nil
}

// dispatch assigns req to the lift SelectLift chooses. It reports false when
// no lift is idle.
func (e *Engine) dispatch(req Request) (bool, error) {
	id, ok := SelectLift(e.fleet, req.Floor)
	if !ok {
		return false, nil
	}
	tr, err := e.fleet.Assign(id, req.Floor, e.clock)
	if err != nil {
		return false, fmt.Errorf("dispatch %v: %w", req, err)
	}
	Log.Debug().Msgf("Sending %v to Elevator-%d", req, id)
	e.emit(tr)
	return true, nil
}

// drain serves queued requests oldest first. A request leaves the queue only
// once a lift has taken it.
func (e *Engine) drain() error {
	for {
		req, ok := e.pending.Peek()
		if !ok {
			return nil
		}
		gen := e.clock.Generation()
		assigned, err := e.dispatch(req)
		if err != nil {
			return err
		}
		if !assigned {
			return nil
		}
		if e.clock.Generation() != gen {
			// A listener reset the engine; the queue is already gone.
			return nil
		}
		e.pending.Commit()
		e.calls(req.Dir).remove(req.Floor)
	}
}

// Tick advances virtual time by elapsed.
func (e *Engine) Tick(elapsed time.Duration) error {
	if elapsed < 0 {
		return fmt.Errorf("tick %v: %w", elapsed, ErrTimeReversal)
	}
	return e.AdvanceTo(e.clock.Now() + elapsed)
}

// AdvanceTo moves virtual time to t, firing every transition due by then in
// time order. Transitions due at the same time fire in the order they were
// scheduled.
func (e *Engine) AdvanceTo(t time.Duration) error {
	return e.clock.Advance(t, e.fire)
}

// RunUntilIdle advances until no transitions remain and returns the time
// reached.
func (e *Engine) RunUntilIdle() (time.Duration, error) {
	for {
		next, ok := e.clock.NextDue()
		if !ok {
			return e.clock.Now(), nil
		}
		if err := e.AdvanceTo(next); err != nil {
			return e.clock.Now(), err
		}
	}
}

func (e *Engine) fire(s Scheduled) error {
	var tr Transition
	var err error
	switch ev := s.Event.(type) {
	case arriveEvent:
		tr, err = e.withElevator(ev.liftID, (*Elevator).arrive)
	case closeDoorsEvent:
		tr, err = e.withElevator(ev.liftID, (*Elevator).closeDoors)
	default:
		return fmt.Errorf("unknown event %T", s.Event)
	}
	if err != nil {
		return fmt.Errorf("fire %v: %w", s.Event, err)
	}

	gen := e.clock.Generation()
	e.emit(tr)
	if e.clock.Generation() != gen || tr.To != Idle {
		return nil
	}
	return e.drain()
}

func (e *Engine) withElevator(id int, step func(*Elevator, *Clock) (Transition, error)) (Transition, error) {
	el, err := e.fleet.Get(id)
	if err != nil {
		return Transition{}, err
	}
	return step(el, e.clock)
}

func (e *Engine) emit(tr Transition) {
	e.history = append(e.history, tr)
	Log.Debug().Msgf("%v", tr)
	for _, fn := range e.listeners {
		fn(tr)
	}
}

// Reset puts every lift back at floor 0, empties the queue, drops every
// scheduled transition and rewinds the clock. Listeners stay registered.
func (e *Engine) Reset() {
	e.clock.Reset()
	e.fleet = newFleet(e.cfg.LiftCount, e.cfg.timing())
	e.pending.Clear()
	e.callsUp.clear()
	e.callsDown.clear()
	e.history = nil
	e.seq = 0
	Log.Info().Msgf("Run %s reset", e.cfg.RunID)
}

// Events yields the transitions of the current run in the order they
// happened, including ones that happen while the caller is iterating. The
// sequence ends at the last recorded transition, or as soon as the engine
// is reset.
func (e *Engine) Events() iter.Seq[Transition] {
	gen := e.clock.Generation()
	return func(yield func(Transition) bool) {
		for i := 0; e.clock.Generation() == gen && i < len(e.history); i++ {
			if !yield(e.history[i]) {
				return
			}
		}
	}
}

// History copies the transitions of the current run.
func (e *Engine) History() []Transition {
	if len(e.history) == 0 {
		return nil
	}
	var out []Transition
	if err := deepcopy.Copy(&out, e.history); err != nil {
		Log.Error().Err(err).Msg("Failed to copy history")
		return nil
	}
	return out
}

// Pending copies the queued requests, oldest first.
func (e *Engine) Pending() []Request {
	if e.pending.Len() == 0 {
		return nil
	}
	var out []Request
	if err := deepcopy.Copy(&out, e.pending.Items()); err != nil {
		Log.Error().Err(err).Msg("Failed to copy pending requests")
		return nil
	}
	return out
}

// HallCalls lists the floor buttons that are lit because a call is queued.
func (e *Engine) HallCalls() []HallCall {
	var calls []HallCall
	for _, f := range e.callsUp.floors() {
		calls = append(calls, HallCall{Floor: f, Dir: UP})
	}
	for _, f := range e.callsDown.floors() {
		calls = append(calls, HallCall{Floor: f, Dir: DOWN})
	}
	return calls
}

func (e *Engine) Status() Status {
	return Status{
		RunID:   e.cfg.RunID,
		Now:     e.clock.Now(),
		Lifts:   e.Snapshot(),
		Pending: e.pending.Len(),
		Calls:   e.HallCalls(),
	}
}

func (e *Engine) calls(dir Direction) *FloorSet {
	if dir == UP {
		return e.callsUp
	}
	return e.callsDown
}
