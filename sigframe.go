// Package sigframe computes measurements over captured digital and analog
// signals and reconstructs higher-level frames from low-level protocol events.
//
// # Core Features
//
//   - Edge statistics over digital transitions: rising/falling edge counts,
//     average, minimum and maximum frequency, period standard deviation
//   - Incremental RMS voltage over analog sample blocks, invariant to how the
//     samples are chunked
//   - Delimiter/timeout text merging of serial and bus character streams
//   - Bus transaction framing (start, address, data, stop)
//   - Register-map decoding of pointer-write/read pairs, with the L3G gyroscope
//     map and angular-rate reconstruction built in
//
// # Basic Usage
//
// Measuring a digital signal:
//
//	res := sigframe.MeasureDigital(
//	    measure.NewSet(measure.FrequencyAvg, measure.PeriodStdDev),
//	    []measure.Edge{{Time: 0, Level: true}, {Time: 0.5, Level: false}, {Time: 1, Level: true}},
//	)
//	freq, _ := res.Get(measure.FrequencyAvg)
//
// Decoding a capture:
//
//	r, _ := capture.Open("uart.jsonl.zst")
//	merger, _ := sigframe.NewTextMerger(cfg)
//	frames, err := sigframe.DecodeAll(merger, r.All(), true)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the measure and
// decoder packages. For fine-grained control use those packages directly.
package sigframe

import (
	"iter"

	"github.com/arloliu/sigframe/config"
	"github.com/arloliu/sigframe/decoder"
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/frame"
	"github.com/arloliu/sigframe/measure"
)

// NewEdgeStats creates an edge statistics accumulator for the digital
// measurements among ms. Non-digital measurements are ignored.
func NewEdgeStats(ms ...measure.Measurement) *measure.EdgeStats {
	return measure.NewEdgeStats(measure.NewSet(ms...))
}

// NewRMS creates an RMS accumulator. It reports VoltageRMS only if ms
// contains it.
func NewRMS(ms ...measure.Measurement) *measure.RMS {
	return measure.NewRMS(measure.NewSet(ms...))
}

// NewTextMerger creates a delimiter/timeout text merger from cfg. A nil cfg
// selects the defaults (newline delimiter, 0.5ms timeout).
func NewTextMerger(cfg *config.Config, opts ...decoder.Option) (*decoder.TextMerger, error) {
	return decoder.NewTextMerger(cfg, opts...)
}

// NewBusFramer creates a bus transaction framer.
func NewBusFramer(opts ...decoder.Option) (*decoder.BusFramer, error) {
	return decoder.NewBusFramer(opts...)
}

// NewGyroDecoder creates a register decoder for the L3G-family gyroscope.
func NewGyroDecoder(opts ...decoder.Option) (*decoder.RegisterDecoder, error) {
	return decoder.NewGyroDecoder(opts...)
}

// Events adapts a slice of events to the sequence type taken by DecodeAll and
// Measure.
func Events(evs []event.Event) iter.Seq2[event.Event, error] {
	return func(yield func(event.Event, error) bool) {
		for _, ev := range evs {
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// DecodeAll feeds every event of events to tr in order and collects the
// emitted frames. With flush set, the frame still pending at end of stream is
// drained through tr.Flush.
//
// Decoding stops at the first error, either from the sequence or a fatal
// error from tr. The frames emitted before the error are returned with it.
//
// Example:
//
//	framer, _ := sigframe.NewBusFramer()
//	frames, err := sigframe.DecodeAll(framer, sigframe.Events(evs), false)
func DecodeAll(tr frame.Transducer, events iter.Seq2[event.Event, error], flush bool) ([]frame.Frame, error) {
	var out []frame.Frame
	for ev, err := range events {
		if err != nil {
			return out, err
		}

		fs, err := tr.Process(ev)
		if err != nil {
			return out, err
		}
		out = append(out, fs...)
	}

	if flush {
		out = append(out, tr.Flush()...)
	}

	return out, nil
}

// MeasureDigital computes the requested digital measurements over edges.
func MeasureDigital(requested measure.Set, edges []measure.Edge) measure.Result {
	s := measure.NewEdgeStats(requested)
	s.Process(edges)

	return s.Finalize()
}

// MeasureAnalog computes the requested analog measurements over sample
// blocks, as if the blocks were one contiguous signal.
func MeasureAnalog(requested measure.Set, blocks ...[]float64) measure.Result {
	r := measure.NewRMS(requested)
	for _, b := range blocks {
		r.Process(b)
	}

	return r.Finalize()
}

// Measure routes the Transition events of a capture to edge statistics and
// its Samples events to the RMS accumulator, and merges both results. Other
// events are skipped.
func Measure(requested measure.Set, events iter.Seq2[event.Event, error]) (measure.Result, error) {
	edges := measure.NewEdgeStats(requested)
	rms := measure.NewRMS(requested)

	for ev, err := range events {
		if err != nil {
			return measure.Result{}, err
		}

		switch p := ev.Payload.(type) {
		case event.Transition:
			edges.Observe(ev.StartTime, p.Level)
		case event.Samples:
			rms.Process(p.Values)
		}
	}

	return edges.Finalize().Merge(rms.Finalize()), nil
}
