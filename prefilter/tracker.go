package prefilter

// Tracker wraps a Prefilter and retires it when it stops paying off.
//
// Every candidate the prefilter reports costs a full matcher attempt. When
// fewer than MinEfficiency of the candidates are confirmed as matches, the
// tracker disables itself and the caller falls back to trying every
// position. Once disabled it stays disabled until Reset.
//
//	tr := prefilter.NewTracker(pf)
//	for tr.IsActive() {
//	    pos := tr.Find(haystack, start)
//	    if pos < 0 {
//	        break
//	    }
//	    if matchAt(pos) {
//	        tr.ConfirmMatch()
//	        return pos
//	    }
//	    start = pos + 1
//	}
type Tracker struct {
	inner  Prefilter
	config TrackerConfig

	candidates     uint64
	confirms       uint64
	lastCheckpoint uint64
	active         bool
}

// TrackerConfig controls when a Tracker retires its prefilter.
type TrackerConfig struct {
	// CheckInterval is the number of candidates between checks.
	CheckInterval uint64

	// MinEfficiency is the lowest acceptable confirms/candidates ratio.
	MinEfficiency float64

	// WarmupPeriod is the number of candidates seen before the first check.
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns CheckInterval 64, MinEfficiency 0.1 and
// WarmupPeriod 128.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker wraps inner with the default configuration. It returns nil
// when inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig wraps inner. It returns nil when inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{inner: inner, config: config, active: true}
}

// Find returns the next candidate at or after start. It returns -1 when there
// is none or when the tracker has been disabled; callers tell the two apart
// with IsActive.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.check()
	}
	return pos
}

// ConfirmMatch records that the last candidate was a match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the counters and the confirm ratio.
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64, active bool) {
	if t.candidates > 0 {
		efficiency = float64(t.confirms) / float64(t.candidates)
	}
	return t.candidates, t.confirms, efficiency, t.active
}

// Reset clears the counters and re-enables the prefilter.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.confirms = 0
	t.lastCheckpoint = 0
	t.active = true
}

func (t *Tracker) check() {
	if t.candidates < t.config.WarmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.config.CheckInterval {
		return
	}
	t.lastCheckpoint = t.candidates
	if float64(t.confirms)/float64(t.candidates) < t.config.MinEfficiency {
		t.active = false
	}
}
