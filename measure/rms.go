package measure

import "math"

// RMS accumulates the root mean square of an analog signal delivered in
// blocks of arbitrary size.
//
// The running mean square is updated incrementally per block, weighted by
// the block's share of all samples seen so far, so the result does not depend
// on how the stream was split into blocks.
//
// Note: RMS is NOT thread-safe.
type RMS struct {
	requested  Set
	meanSquare float64
	processed  uint64
}

// NewRMS creates an accumulator that reports the analog measurements in
// requested. Digital measurements in the set are ignored.
func NewRMS(requested Set) *RMS {
	return &RMS{requested: requested & analog}
}

// Requested returns the measurements this accumulator reports.
func (r *RMS) Requested() Set {
	return r.requested
}

// Process consumes one block of samples. Empty blocks are ignored.
func (r *RMS) Process(samples []float64) {
	if len(samples) == 0 {
		return
	}

	var sum float64
	for _, v := range samples {
		sum += v * v
	}

	r.ProcessMeanSquare(sum/float64(len(samples)), uint64(len(samples)))
}

// ProcessMeanSquare consumes one block given its precomputed mean square and
// sample count.
//
// A block with zero samples, or a negative or NaN mean square, is ignored so
// the running mean square never becomes negative.
func (r *RMS) ProcessMeanSquare(meanSquare float64, count uint64) {
	if count == 0 || meanSquare < 0 || math.IsNaN(meanSquare) {
		return
	}

	total := r.processed + count
	r.meanSquare += (meanSquare - r.meanSquare) * (float64(count) / float64(total))
	r.processed = total
}

// MeanSquare returns the running mean of squared samples.
func (r *RMS) MeanSquare() float64 {
	return r.meanSquare
}

// SamplesProcessed returns the number of samples folded in so far.
func (r *RMS) SamplesProcessed() uint64 {
	return r.processed
}

// Finalize returns VoltageRMS when it was requested. Before any samples are
// processed the reported value is 0. Finalize may be called any number of
// times.
func (r *RMS) Finalize() Result {
	res := newResult()
	if r.requested.Has(VoltageRMS) {
		res.set(VoltageRMS, math.Sqrt(r.meanSquare))
	}

	return res
}

// Reset restores the accumulator to its construction-time state.
func (r *RMS) Reset() {
	*r = RMS{requested: r.requested}
}
