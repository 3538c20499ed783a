// Package measure provides single-pass accumulators for capture-wide
// statistics.
//
// Two accumulators are available:
//
//   - EdgeStats consumes digital transitions and reports edge counts,
//     average/min/max frequency and the period standard deviation.
//   - RMS consumes analog sample blocks and reports the RMS voltage.
//
// Both follow the same lifecycle: construct once per measurement run with the
// requested Set, feed every chunk in arrival order, then call Finalize. Values
// that are undefined for the observed input are omitted from the Result
// instead of being reported as zero or causing a division by zero.
//
// # Usage
//
//	stats := measure.NewEdgeStats(measure.NewSet(measure.FrequencyAvg, measure.PeriodStdDev))
//	stats.Process([]measure.Edge{{Time: 0, Level: true}, {Time: 0.5, Level: false}, {Time: 1, Level: true}})
//	res := stats.Finalize()
//	if f, ok := res.Get(measure.FrequencyAvg); ok {
//	    fmt.Printf("f=%.1f Hz\n", f)
//	}
//
// Period variance is computed with Welford's algorithm (RunningPeriodStats),
// which is numerically stable and never revisits earlier samples.
package measure
