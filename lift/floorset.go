package lift

// FloorSet counts outstanding calls per floor. A floor is lit while its
// count is above zero.
type FloorSet struct {
	count []int
}

func newFloorSet(floors int) *FloorSet {
	return &FloorSet{make([]int, floors)}
}

// add returns whether the floor was already lit.
func (fs *FloorSet) add(floor Floor) bool {
	prev := fs.count[floor] > 0
	fs.count[floor]++
	return prev
}

// remove returns whether the floor is still lit.
func (fs *FloorSet) remove(floor Floor) bool {
	if fs.count[floor] > 0 {
		fs.count[floor]--
	}
	return fs.count[floor] > 0
}

// floors lists lit floors from lowest to highest.
func (fs *FloorSet) floors() []Floor {
	var lit []Floor
	for f, n := range fs.count {
		if n > 0 {
			lit = append(lit, Floor(f))
		}
	}
	return lit
}

func (fs *FloorSet) clear() {
	for i := range fs.count {
		fs.count[i] = 0
	}
}
