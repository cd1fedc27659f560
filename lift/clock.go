package lift

import (
	"container/heap"
	"fmt"
	"time"
)

// Scheduled is an event waiting on the Clock.
// Events due at the same time fire in the order they were scheduled.
type Scheduled struct {
	At    time.Duration
	Seq   uint64
	Event any
}

// Events the engine puts on the clock.
type arriveEvent struct{ liftID int }
type closeDoorsEvent struct{ liftID int }

func (e arriveEvent) String() string     { return fmt.Sprintf("arrive(Elevator-%d)", e.liftID) }
func (e closeDoorsEvent) String() string { return fmt.Sprintf("closeDoors(Elevator-%d)", e.liftID) }

type eventQueue []Scheduled

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].At != q[j].At {
		return q[i].At < q[j].At
	}
	return q[i].Seq < q[j].Seq
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)   { *q = append(*q, x.(Scheduled)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Clock is a virtual time source. Time only moves when Advance is called,
// and everything that was due by then fires in order.
type Clock struct {
	now        time.Duration
	seq        uint64
	queue      eventQueue
	generation uint64 // bumped by Reset; Advance stops firing when it changes
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Now() time.Duration { return c.now }

// Pending is the number of scheduled events not yet fired.
func (c *Clock) Pending() int { return len(c.queue) }

func (c *Clock) Generation() uint64 { return c.generation }

// Schedule queues event to fire delay after the current time.
func (c *Clock) Schedule(delay time.Duration, event any) Scheduled {
	if delay < 0 {
		delay = 0
	}
	c.seq++
	s := Scheduled{At: c.now + delay, Seq: c.seq, Event: event}
	heap.Push(&c.queue, s)
	return s
}

// NextDue returns the time of the earliest scheduled event.
func (c *Clock) NextDue() (time.Duration, bool) {
	if len(c.queue) == 0 {
		return 0, false
	}
	return c.queue[0].At, true
}

// Advance moves the clock to t, calling fire for each event due at or before t.
// The clock reads the event's due time while fire runs. If fire returns an
// error the clock stays at that event's time and the error is returned.
// If fire resets the clock, Advance returns immediately without touching the
// new timeline.
func (c *Clock) Advance(t time.Duration, fire func(Scheduled) error) error {
	if t < c.now {
		return fmt.Errorf("advance to %v from %v: %w", t, c.now, ErrTimeReversal)
	}
	gen := c.generation
	for len(c.queue) > 0 && c.queue[0].At <= t {
		next := heap.Pop(&c.queue).(Scheduled)
		c.now = next.At
		if err := fire(next); err != nil {
			return err
		}
		if c.generation != gen {
			return nil
		}
	}
	c.now = t
	return nil
}

// Reset drops every scheduled event and rewinds to zero.
func (c *Clock) Reset() {
	c.now = 0
	c.seq = 0
	c.queue = nil
	c.generation++
}
