package measure

// Result holds the values produced by a Finalize call.
//
// A measurement that was not requested, or whose value is undefined for the
// observed input (for example a standard deviation over a single period), is
// absent rather than zero.
type Result struct {
	values map[Measurement]float64
}

func newResult() Result {
	return Result{values: make(map[Measurement]float64, numMeasurements)}
}

func (r Result) set(m Measurement, v float64) {
	r.values[m] = v
}

// Get returns the value of m and whether it is present.
func (r Result) Get(m Measurement) (float64, bool) {
	v, ok := r.values[m]
	return v, ok
}

// Has reports whether m is present.
func (r Result) Has(m Measurement) bool {
	_, ok := r.values[m]
	return ok
}

// Len returns the number of present measurements.
func (r Result) Len() int {
	return len(r.values)
}

// Map returns the present values keyed by measurement name.
func (r Result) Map() map[string]float64 {
	out := make(map[string]float64, len(r.values))
	for m, v := range r.values {
		out[m.String()] = v
	}

	return out
}

// Merge returns a new Result holding the values of r and other. Values in
// other win on conflict.
func (r Result) Merge(other Result) Result {
	out := newResult()
	for m, v := range r.values {
		out.values[m] = v
	}
	for m, v := range other.values {
		out.values[m] = v
	}

	return out
}
