package sgr

// Set is a hash-consing table for attribute records. Cells snapshot the
// active style on every glyph write; interning lets all cells written
// under one style share a single record instead of cloning per cell.
type Set struct {
	byHash map[uint64]*Attributes
}

func NewSet() *Set {
	return &Set{byHash: make(map[uint64]*Attributes)}
}

// Intern returns the canonical pointer for a. The empty record interns
// to nil. On the (unlikely) hash collision the newer record replaces
// the mapping; cells holding the older pointer stay correct.
func (s *Set) Intern(a Attributes) *Attributes {
	if a.IsEmpty() {
		return nil
	}
	h := a.Hash()
	if existing, ok := s.byHash[h]; ok && existing.Equal(a) {
		return existing
	}
	record := a
	s.byHash[h] = &record
	return &record
}

// Reset drops all interned records.
func (s *Set) Reset() {
	clear(s.byHash)
}
