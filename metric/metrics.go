// Package metric exposes decoder and measurement activity as Prometheus
// counters.
//
// Metrics are registered on a caller-supplied registry, so a process can run
// several pipelines against separate registries. Decoders report drops through
// [decoder.WithRecorder]; [Instrument] wraps any [frame.Transducer] to count
// the events it consumes and the frames it emits.
package metric

import (
	stderrors "errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/sigframe/decoder"
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/frame"
)

const namespace = "sigframe"

// Metrics contains the pipeline counters.
type Metrics struct {
	EventsTotal  *prometheus.CounterVec
	FramesTotal  *prometheus.CounterVec
	DroppedTotal *prometheus.CounterVec
	ErrorsTotal  *prometheus.CounterVec
}

var _ decoder.Recorder = (*Metrics)(nil)

// NewMetrics creates the counters and registers them on reg.
//
// Registering twice on the same registry fails with the underlying
// [prometheus.AlreadyRegisteredError].
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "decoder",
				Name:      "events_total",
				Help:      "Total number of events fed to a decoder",
			},
			[]string{"decoder", "kind"},
		),

		FramesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "decoder",
				Name:      "frames_total",
				Help:      "Total number of frames emitted by a decoder",
			},
			[]string{"decoder", "kind"},
		),

		DroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "decoder",
				Name:      "dropped_events_total",
				Help:      "Total number of events dropped as recoverable anomalies",
			},
			[]string{"decoder", "reason"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "decoder",
				Name:      "errors_total",
				Help:      "Total number of fatal decoder errors",
			},
			[]string{"decoder"},
		),
	}

	for _, c := range []prometheus.Collector{m.EventsTotal, m.FramesTotal, m.DroppedTotal, m.ErrorsTotal} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if stderrors.As(err, &already) {
				return nil, fmt.Errorf("metric already registered: %w", err)
			}

			return nil, fmt.Errorf("register metric: %w", err)
		}
	}

	return m, nil
}

// EventDropped implements [decoder.Recorder].
func (m *Metrics) EventDropped(decoderName, reason string) {
	m.DroppedTotal.WithLabelValues(decoderName, reason).Inc()
}

func (m *Metrics) eventProcessed(decoderName string, kind event.Kind) {
	m.EventsTotal.WithLabelValues(decoderName, kind.String()).Inc()
}

func (m *Metrics) framesEmitted(decoderName string, frames []frame.Frame) {
	for _, f := range frames {
		m.FramesTotal.WithLabelValues(decoderName, f.Kind).Inc()
	}
}
