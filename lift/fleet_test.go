package lift

import (
	"errors"
	"testing"
)

func TestFleetGet(t *testing.T) {
	f := newFleet(3, referenceTiming)
	for id := 1; id <= 3; id++ {
		e, err := f.Get(id)
		if err != nil || e.ID() != id {
			t.Errorf("Get(%d) = %v, %v", id, e, err)
		}
	}
	for _, id := range []int{0, 4, -1} {
		if _, err := f.Get(id); !errors.Is(err, ErrUnknownElevator) {
			t.Errorf("Get(%d) = %v, expected ErrUnknownElevator", id, err)
		}
	}
}

func TestFleetAssignOnlyTouchesOneLift(t *testing.T) {
	f := newFleet(2, referenceTiming)
	clk := NewClock()
	if _, err := f.Assign(2, 6, clk); err != nil {
		t.Fatalf("Assign() = %v", err)
	}
	lifts := f.Lifts()
	if lifts[0].State != Idle || lifts[1].State != Moving || lifts[1].Dest != 6 {
		t.Errorf("Lifts() = %v", lifts)
	}
	if _, err := f.Assign(3, 1, clk); !errors.Is(err, ErrUnknownElevator) {
		t.Errorf("Assign(3) = %v, expected ErrUnknownElevator", err)
	}
}
