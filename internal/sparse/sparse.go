// Package sparse provides a set of small integer IDs with constant-time
// insert and membership, for graph walks over an op arena.
package sparse

// Set holds IDs below a capacity fixed at construction. dense lists the
// members in insertion order; index maps a member to its slot in dense.
type Set[T ~uint32] struct {
	index []uint32
	dense []T
}

// New returns an empty set for IDs in [0, capacity).
func New[T ~uint32](capacity int) *Set[T] {
	return &Set[T]{
		index: make([]uint32, capacity),
		dense: make([]T, 0, capacity),
	}
}

// Insert adds id and reports whether it was absent. It panics if id is out
// of range.
func (s *Set[T]) Insert(id T) bool {
	if s.Contains(id) {
		return false
	}
	s.index[id] = uint32(len(s.dense))
	s.dense = append(s.dense, id)
	return true
}

// Contains reports whether id is in the set. Out-of-range IDs never are.
func (s *Set[T]) Contains(id T) bool {
	if uint64(id) >= uint64(len(s.index)) {
		return false
	}
	i := s.index[id]
	return int(i) < len(s.dense) && s.dense[i] == id
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.dense)
}

// Values returns the members in insertion order. The slice is valid until
// the next Insert.
func (s *Set[T]) Values() []T {
	return s.dense
}
