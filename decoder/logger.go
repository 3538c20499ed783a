package decoder

import (
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/internal/options"
)

// SLogger abstracts the [*slog.Logger] behavior.
//
// Decoders use two levels:
//   - Info for run lifecycle (reset, flush of a pending frame)
//   - Debug for every event dropped as a recoverable anomaly, with a
//     "reason" attribute
//
// The [*slog.Logger] type satisfies this interface.
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// DefaultSLogger returns a logger that discards everything. Libraries should
// stay silent unless the caller opts in.
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

type discardSLogger struct{}

var _ SLogger = discardSLogger{}

// Debug implements [SLogger].
func (discardSLogger) Debug(msg string, args ...any) {}

// Info implements [SLogger].
func (discardSLogger) Info(msg string, args ...any) {}

// Drop reasons reported in debug logs.
const (
	reasonUnsupportedEvent = "unsupported_event"
	reasonStopWithoutStart = "stop_without_start"
	reasonDataWithoutStart = "data_without_start"
	reasonRepeatedStart    = "repeated_start"
	reasonImplicitStart    = "address_without_start"
	reasonNoAddress        = "transaction_without_address"
	reasonReadWithoutWrite = "read_without_write"
	reasonEmptyPointer     = "write_without_register_pointer"
)

// Recorder counts dropped events per decoder and reason.
//
// The *metric.Metrics type satisfies this interface.
type Recorder interface {
	EventDropped(decoder, reason string)
}

type nopRecorder struct{}

func (nopRecorder) EventDropped(decoder, reason string) {}

// observer reports dropped events to the logger and the recorder.
type observer struct {
	log SLogger
	rec Recorder
}

func (o observer) drop(decoder, reason string, ev event.Event) {
	o.log.Debug("sigframe: event dropped",
		"decoder", decoder,
		"reason", reason,
		"event", ev.String(),
	)
	o.rec.EventDropped(decoder, reason)
}

// settings holds the options shared by every decoder.
type settings struct {
	logger   SLogger
	recorder Recorder
}

func (s settings) observer() observer {
	return observer{log: s.logger, rec: s.recorder}
}

func newSettings(opts []Option) (settings, error) {
	s := settings{logger: DefaultSLogger(), recorder: nopRecorder{}}
	if err := options.Apply(&s, opts...); err != nil {
		return settings{}, err
	}

	return s, nil
}

// Option configures a decoder.
type Option = options.Option[*settings]

// WithLogger sets the logger. A nil logger keeps the discarding default.
func WithLogger(l SLogger) Option {
	return options.NoError(func(s *settings) {
		if l != nil {
			s.logger = l
		}
	})
}

// WithRecorder sets the drop recorder. A nil recorder keeps the no-op default.
func WithRecorder(r Recorder) Option {
	return options.NoError(func(s *settings) {
		if r != nil {
			s.recorder = r
		}
	})
}
