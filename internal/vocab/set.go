package vocab

// Set is an immutable set of allowed string values with a stable declaration
// order, used for the closed category and dietary-tag vocabularies.
type Set struct {
	values  map[string]struct{}
	ordered []string
}

// New builds a set from the given values, preserving declaration order and
// dropping duplicates.
func New(values ...string) *Set {
	s := &Set{
		values:  make(map[string]struct{}, len(values)),
		ordered: make([]string, 0, len(values)),
	}
	for _, v := range values {
		if _, exists := s.values[v]; exists {
			continue
		}
		s.values[v] = struct{}{}
		s.ordered = append(s.ordered, v)
	}
	return s
}

// Contains checks if a value exists in the set. Comparison is exact and
// case-sensitive.
func (s *Set) Contains(v string) bool {
	_, exists := s.values[v]
	return exists
}

// Values returns the set's values in declaration order.
func (s *Set) Values() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Size returns the number of values in the set.
func (s *Set) Size() int {
	return len(s.ordered)
}
