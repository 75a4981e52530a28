package turtle

// stateStack grows without a cap. Deeply nested programs cost memory
// proportional to their nesting depth.
type stateStack []Snapshot

func (s *stateStack) depth() int {
	return len(*s)
}

func (s *stateStack) clear() {
	*s = (*s)[:0]
}

func (s *stateStack) push(snap Snapshot) {
	*s = append(*s, snap)
}

func (s *stateStack) pop() (Snapshot, bool) {
	if len(*s) == 0 {
		return Snapshot{}, false
	}
	var snap Snapshot
	*s, snap = (*s)[:len(*s)-1], (*s)[len(*s)-1]
	return snap, true
}
