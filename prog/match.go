package prog

// Match holds the group boundaries of one successful match attempt.
//
// A Match is either fully populated by a successful attempt or fully reset;
// a failed attempt clears whatever a previous success stored. Offsets are
// byte offsets into the subject. A group that did not participate reports -1.
type Match struct {
	start []int
	end   []int
	ok    bool
}

// NewMatch returns an empty, reset Match.
func NewMatch() *Match {
	return &Match{}
}

// Reset clears the match.
func (m *Match) Reset() {
	m.ok = false
	m.start = m.start[:0]
	m.end = m.end[:0]
}

// IsSet reports whether the match holds a successful result.
func (m *Match) IsSet() bool {
	return m.ok
}

// GroupCount returns 1 + the number of capturing groups.
func (m *Match) GroupCount() (int, error) {
	if !m.ok {
		return 0, ErrResultNotSet
	}
	return len(m.start), nil
}

// Start returns the start offset of group i.
func (m *Match) Start(i int) (int, error) {
	if err := m.check(i); err != nil {
		return -1, err
	}
	return m.start[i], nil
}

// End returns the end offset of group i.
func (m *Match) End(i int) (int, error) {
	if err := m.check(i); err != nil {
		return -1, err
	}
	return m.end[i], nil
}

// Group returns the text of group i within input, or nil if the group did
// not participate.
func (m *Match) Group(input []byte, i int) ([]byte, error) {
	if err := m.check(i); err != nil {
		return nil, err
	}
	if m.start[i] < 0 {
		return nil, nil
	}
	return input[m.start[i]:m.end[i]:m.end[i]], nil
}

// GroupString is like Group for string subjects.
func (m *Match) GroupString(input string, i int) (string, error) {
	if err := m.check(i); err != nil {
		return "", err
	}
	if m.start[i] < 0 {
		return "", nil
	}
	return input[m.start[i]:m.end[i]], nil
}

// Indices appends start/end pairs for every group to dst, in the layout of
// regexp.FindSubmatchIndex.
func (m *Match) Indices(dst []int) []int {
	if !m.ok {
		return dst
	}
	for i := range m.start {
		dst = append(dst, m.start[i], m.end[i])
	}
	return dst
}

func (m *Match) check(i int) error {
	if !m.ok {
		return ErrResultNotSet
	}
	if i < 0 || i >= len(m.start) {
		return ErrIndexOutOfRange
	}
	return nil
}

// fill stores the capture slots of a successful attempt. slots holds start
// and end of each group interleaved, group 0 first.
func (m *Match) fill(slots []int) {
	n := len(slots) / 2
	m.start = m.start[:0]
	m.end = m.end[:0]
	for i := 0; i < n; i++ {
		s, e := slots[2*i], slots[2*i+1]
		if s < 0 || e < 0 {
			s, e = -1, -1
		}
		m.start = append(m.start, s)
		m.end = append(m.end, e)
	}
	m.ok = true
}
