package sat

// varSet is a set of Var in [0, N) supporting O(1) Add/Contains and O(1)
// Clear via a timestamp trick, so the "seen" bitset used by the Conflict
// Analyzer (spec.md §4.4) never needs to enumerate all N variables to reset,
// only the ones actually touched implicitly fall out of the timestamp bump.
type varSet struct {
	addedAt        []uint32
	addedTimestamp uint32
}

// Contains returns true if v is in the set.
func (s *varSet) Contains(v Var) bool {
	return s.addedAt[v] == s.addedTimestamp
}

// Add adds v to the set.
func (s *varSet) Add(v Var) {
	s.addedAt[v] = s.addedTimestamp
}

// Clear empties the set in constant time, regardless of how many variables
// have been declared.
func (s *varSet) Clear() {
	s.addedTimestamp++
	if s.addedTimestamp == 0 { // overflow, every slot would spuriously match 0
		s.addedTimestamp = 1
		for i := range s.addedAt {
			s.addedAt[i] = 0
		}
	}
}

// growTo grows the set to support variables up to newNumVars-1.
func (s *varSet) growTo(newNumVars int) {
	for len(s.addedAt) < newNumVars {
		s.addedAt = append(s.addedAt, 0)
	}
}
