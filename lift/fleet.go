package lift

import "fmt"

// Fleet holds every lift in the building, ordered by id starting at 1.
type Fleet struct {
	elevators []*Elevator
}

func newFleet(count int, t timing) *Fleet {
	elevators := make([]*Elevator, count)
	for i := range elevators {
		elevators[i] = newElevator(firstElevatorID+i, t)
	}
	return &Fleet{elevators}
}

// Get returns the lift with the given id.
func (f *Fleet) Get(id int) (*Elevator, error) {
	i := id - firstElevatorID
	if i < 0 || i >= len(f.elevators) {
		return nil, fmt.Errorf("Elevator-%d: %w", id, ErrUnknownElevator)
	}
	return f.elevators[i], nil
}

// Lifts returns a view of every lift, ordered by id.
func (f *Fleet) Lifts() []LiftView {
	views := make([]LiftView, len(f.elevators))
	for i, e := range f.elevators {
		views[i] = e.view()
	}
	return views
}

// Assign sends lift id to dest.
func (f *Fleet) Assign(id int, dest Floor, clk *Clock) (Transition, error) {
	e, err := f.Get(id)
	if err != nil {
		return Transition{}, err
	}
	return e.Assign(dest, clk)
}
