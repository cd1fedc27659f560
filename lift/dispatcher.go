package lift

// LiftLister is anything that can report the current state of its lifts.
type LiftLister interface {
	Lifts() []LiftView
}

// SelectLift picks the idle lift nearest to floor. Equal distances go to the
// lowest id. It reports false when every lift is busy.
func SelectLift(fleet LiftLister, floor Floor) (int, bool) {
	bestID := 0
	bestDistance := 0
	found := false
	for _, l := range fleet.Lifts() {
		if l.State != Idle {
			continue
		}
		d := l.Floor.distance(floor)
		if !found || d < bestDistance || (d == bestDistance && l.ID < bestID) {
			bestID, bestDistance, found = l.ID, d, true
		}
	}
	return bestID, found
}
