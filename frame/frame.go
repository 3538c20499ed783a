// Package frame defines the output records of the sigframe decoders and the
// Transducer contract they implement.
package frame

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/arloliu/sigframe/event"
)

// Kind tags emitted by the decoders.
const (
	// KindMessage is a merged text message.
	KindMessage = "message"
	// KindTransaction is one complete bus transaction.
	KindTransaction = "transaction"
	// KindError is a bus transaction that was closed before any data arrived.
	KindError = "error"
	// KindRegisterRead is a decoded register read.
	KindRegisterRead = "register_read"
)

// Frame is one reconstructed higher-level record. Times are in seconds.
//
// Frames are treated as immutable once emitted: decoders never retain or
// modify a Frame they returned.
type Frame struct {
	Kind      string
	StartTime float64
	EndTime   float64
	Fields    map[string]any
}

// New creates a Frame with an empty field map.
func New(kind string, start, end float64) Frame {
	return Frame{Kind: kind, StartTime: start, EndTime: end, Fields: make(map[string]any)}
}

// String returns the frame as "kind[start,end]{k=v ...}" with keys sorted.
func (f Frame) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s[%g,%g]{", f.Kind, f.StartTime, f.EndTime)
	for i, k := range slices.Sorted(maps.Keys(f.Fields)) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", k, f.Fields[k])
	}
	sb.WriteByte('}')

	return sb.String()
}

// Text returns the string field name, or "" when it is absent or not a string.
func (f Frame) Text(name string) string {
	s, _ := f.Fields[name].(string)
	return s
}

// Transducer consumes events one at a time and emits completed frames.
//
// Process returns zero, one or, occasionally, two frames. A non-nil error is
// fatal for the decoding run; recoverable anomalies in the input are dropped
// without an error.
//
// Flush drains whatever in-progress frame the transducer would emit at end of
// stream. Hosts that stop feeding events without calling Flush simply lose
// the pending frame.
//
// Reset restores the construction-time state so the instance can decode a
// new capture.
type Transducer interface {
	Process(ev event.Event) ([]Frame, error)
	Flush() []Frame
	Reset()
}
