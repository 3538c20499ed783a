package measure

// Edge is one digital transition. Level is the logic level after the edge.
type Edge struct {
	Time  float64
	Level bool
}

// EdgeStats accumulates edge counts and period statistics over a stream of
// digital transitions.
//
// A period is the time between two consecutive edges of the same polarity as
// the first edge in the stream. Edges of the opposite polarity are counted
// but do not contribute periods.
//
// Note: EdgeStats is NOT thread-safe. Each instance should be fed by a single
// goroutine, in timestamp order.
type EdgeStats struct {
	requested Set

	rising  uint64
	falling uint64

	started    bool
	firstLevel bool
	firstTime  float64

	lastMatchTime float64
	hasLastMatch  bool

	periods RunningPeriodStats
}

// NewEdgeStats creates an accumulator that reports the digital measurements
// in requested. Analog measurements in the set are ignored.
func NewEdgeStats(requested Set) *EdgeStats {
	return &EdgeStats{requested: requested & digital}
}

// Requested returns the measurements this accumulator reports.
func (s *EdgeStats) Requested() Set {
	return s.requested
}

// Process consumes a contiguous chunk of transitions. It may be called any
// number of times; chunks must arrive in order.
func (s *EdgeStats) Process(edges []Edge) {
	for _, e := range edges {
		s.Observe(e.Time, e.Level)
	}
}

// Observe consumes a single transition at time t ending at level.
func (s *EdgeStats) Observe(t float64, level bool) {
	switch {
	case !s.started:
		s.started = true
		s.firstLevel = level
		s.firstTime = t
	case level == s.firstLevel:
		prev := s.firstTime
		if s.hasLastMatch {
			prev = s.lastMatchTime
		}
		s.lastMatchTime = t
		s.hasLastMatch = true
		s.periods.Add(t - prev)
	}

	if level {
		s.rising++
	} else {
		s.falling++
	}
}

// Periods returns the running period statistics.
func (s *EdgeStats) Periods() *RunningPeriodStats {
	return &s.periods
}

// Finalize returns the requested statistics. It does not modify the
// accumulator and may be called any number of times.
//
// Undefined values are omitted:
//   - FrequencyAvg with fewer than two edges of the first polarity, or a zero span
//   - FrequencyMin when no maximum period exists or it is zero
//   - FrequencyMax when no minimum period exists or it is zero
//   - PeriodStdDev with fewer than two periods
func (s *EdgeStats) Finalize() Result {
	res := newResult()

	if s.requested.Has(EdgesRising) {
		res.set(EdgesRising, float64(s.rising))
	}
	if s.requested.Has(EdgesFalling) {
		res.set(EdgesFalling, float64(s.falling))
	}

	if s.requested.Has(FrequencyAvg) && s.started && s.hasLastMatch {
		matching := s.falling
		if s.firstLevel {
			matching = s.rising
		}
		// edges, not periods: n matching edges bound n-1 complete periods
		span := s.lastMatchTime - s.firstTime
		if span > 0 {
			res.set(FrequencyAvg, float64(matching-1)/span)
		}
	}

	if s.requested.Has(FrequencyMin) {
		if p, ok := s.periods.Max(); ok && p != 0 {
			res.set(FrequencyMin, 1/p)
		}
	}

	if s.requested.Has(FrequencyMax) {
		if p, ok := s.periods.Min(); ok && p != 0 {
			res.set(FrequencyMax, 1/p)
		}
	}

	if s.requested.Has(PeriodStdDev) {
		if sd, ok := s.periods.StdDev(); ok {
			res.set(PeriodStdDev, sd)
		}
	}

	return res
}

// Reset restores the accumulator to its construction-time state. The
// requested measurements are kept.
func (s *EdgeStats) Reset() {
	*s = EdgeStats{requested: s.requested}
}
