package reconcile

import "sort"

// TouchedSet holds the item codes created or updated by the pull pass of one run.
// The push pass skips them so a record is not echoed back in the same run.
// A TouchedSet is owned by a single run and is not safe for concurrent use.
type TouchedSet struct {
	codes map[string]struct{}
}

// NewTouchedSet returns an empty set.
func NewTouchedSet() *TouchedSet {
	return &TouchedSet{codes: make(map[string]struct{})}
}

// Add marks code as touched. Empty codes are ignored.
func (s *TouchedSet) Add(code string) {
	if code == "" {
		return
	}
	s.codes[code] = struct{}{}
}

// Has reports whether code was touched.
func (s *TouchedSet) Has(code string) bool {
	_, ok := s.codes[code]
	return ok
}

// Len returns the number of touched codes.
func (s *TouchedSet) Len() int {
	return len(s.codes)
}

// Keys returns the touched codes in ascending order.
func (s *TouchedSet) Keys() []string {
	keys := make([]string, 0, len(s.codes))
	for k := range s.codes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
