package jsondiff

// Stats holds per-operation counts for a patch
type Stats struct {
	Adds     int `json:"adds,omitempty"`     // number of add operations
	Removes  int `json:"removes,omitempty"`  // number of remove operations
	Replaces int `json:"replaces,omitempty"` // number of replace operations
	Moves    int `json:"moves,omitempty"`    // number of move operations
	Copies   int `json:"copies,omitempty"`   // number of copy operations
}

// Total returns the overall operation count
func (s Stats) Total() int {
	return s.Adds + s.Removes + s.Replaces + s.Moves + s.Copies
}

// CalcStats tallies the operations in a patch
func CalcStats(patch Patch) *Stats {
	s := &Stats{}
	for _, op := range patch {
		switch op.Op {
		case OpAdd:
			s.Adds++
		case OpRemove:
			s.Removes++
		case OpReplace:
			s.Replaces++
		case OpMove:
			s.Moves++
		case OpCopy:
			s.Copies++
		}
	}
	return s
}
