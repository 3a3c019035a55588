package iteratable

// Set is an insertion-ordered set of comparable values.
type Set struct {
	items  []interface{}
	index  map[interface{}]int
	cursor int
}

// NewSet creates an empty set with room for capacity elements.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items:  make([]interface{}, 0, capacity),
		index:  make(map[interface{}]int, capacity),
		cursor: -1,
	}
}

// Add inserts an element. Elements already present are ignored.
// Returns the set (for chaining).
func (s *Set) Add(x interface{}) *Set {
	if _, ok := s.index[x]; ok {
		return s
	}
	s.index[x] = len(s.items)
	s.items = append(s.items, x)
	return s
}

// Contains is a membership test.
func (s *Set) Contains(x interface{}) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[x]
	return ok
}

// Size returns the number of elements.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty is true for sets without elements.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// Values returns the elements in insertion order. The slice is a copy.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	vals := make([]interface{}, len(s.items))
	copy(vals, s.items)
	return vals
}

// Copy creates a shallow copy of s.
func (s *Set) Copy() *Set {
	c := NewSet(s.Size())
	for _, x := range s.items {
		c.Add(x)
	}
	return c
}

// Equals is true if s and other contain the same elements, in any order.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, x := range s.items {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// --- Iteration -------------------------------------------------------------

// IterateOnce starts an iteration. Use it like this:
//
//	S.IterateOnce()
//	for S.Next() {
//	    x := S.Item()
//	    …
//	}
//
// Elements added during the iteration will be visited, too.
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next advances the iteration cursor. It returns false if the set is exhausted.
func (s *Set) Next() bool {
	if s.cursor+1 >= len(s.items) {
		s.cursor = len(s.items)
		return false
	}
	s.cursor++
	return true
}

// Item returns the element at the iteration cursor.
func (s *Set) Item() interface{} {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return nil
	}
	return s.items[s.cursor]
}
