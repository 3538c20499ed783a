package measure

import "math"

// RunningPeriodStats accumulates periods with Welford's online algorithm and
// tracks the shortest and longest period seen.
//
// The min/max update is deliberately asymmetric: a period is first compared
// against the minimum and only checked against the maximum when it did not
// become the new minimum. As a consequence the very first period establishes
// the minimum only, and the maximum stays unset until a later period is not
// below the minimum.
//
// The zero value is ready to use.
type RunningPeriodStats struct {
	count  uint64
	mean   float64
	m2     float64
	min    float64
	max    float64
	hasMin bool
	hasMax bool
}

// Add folds one period into the statistics.
func (s *RunningPeriodStats) Add(period float64) {
	if !s.hasMin || s.min > period {
		s.min = period
		s.hasMin = true
	} else if !s.hasMax || s.max < period {
		s.max = period
		s.hasMax = true
	}

	s.count++
	delta := period - s.mean
	s.mean += delta / float64(s.count)
	delta2 := period - s.mean
	s.m2 += delta * delta2
}

// Count returns the number of periods added.
func (s *RunningPeriodStats) Count() uint64 {
	return s.count
}

// Mean returns the running mean, or 0 when nothing was added.
func (s *RunningPeriodStats) Mean() float64 {
	return s.mean
}

// Min returns the shortest period, if any.
func (s *RunningPeriodStats) Min() (float64, bool) {
	return s.min, s.hasMin
}

// Max returns the longest period, if any. See the type documentation for
// why it can be unset while Min is set.
func (s *RunningPeriodStats) Max() (float64, bool) {
	return s.max, s.hasMax
}

// Variance returns the sample variance m2/(n-1). It is defined only for
// more than one period.
func (s *RunningPeriodStats) Variance() (float64, bool) {
	if s.count <= 1 {
		return 0, false
	}

	return s.m2 / float64(s.count-1), true
}

// StdDev returns the sample standard deviation, defined only for more than
// one period.
func (s *RunningPeriodStats) StdDev() (float64, bool) {
	v, ok := s.Variance()
	if !ok {
		return 0, false
	}

	return math.Sqrt(v), true
}

// Reset restores the zero value.
func (s *RunningPeriodStats) Reset() {
	*s = RunningPeriodStats{}
}
