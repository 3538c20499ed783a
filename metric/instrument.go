package metric

import (
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/frame"
)

// Instrumented is a [frame.Transducer] that counts what passes through it.
type Instrumented struct {
	name    string
	inner   frame.Transducer
	metrics *Metrics
}

var _ frame.Transducer = (*Instrumented)(nil)

// Instrument wraps tr so that every processed event and emitted frame is
// counted under the decoder label name. A nil m returns tr unchanged.
func Instrument(name string, tr frame.Transducer, m *Metrics) frame.Transducer {
	if m == nil {
		return tr
	}

	return &Instrumented{name: name, inner: tr, metrics: m}
}

// Process implements [frame.Transducer].
func (i *Instrumented) Process(ev event.Event) ([]frame.Frame, error) {
	i.metrics.eventProcessed(i.name, ev.Kind())

	frames, err := i.inner.Process(ev)
	if err != nil {
		i.metrics.ErrorsTotal.WithLabelValues(i.name).Inc()
		return frames, err
	}
	i.metrics.framesEmitted(i.name, frames)

	return frames, nil
}

// Flush implements [frame.Transducer].
func (i *Instrumented) Flush() []frame.Frame {
	frames := i.inner.Flush()
	i.metrics.framesEmitted(i.name, frames)

	return frames
}

// Reset implements [frame.Transducer].
func (i *Instrumented) Reset() {
	i.inner.Reset()
}
