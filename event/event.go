// Package event defines the low-level capture events consumed by sigframe.
//
// An Event carries a time span and exactly one Payload. Payload is a sealed
// interface: the concrete variants below are the only implementations, so a
// type switch over them is exhaustive.
//
//	switch p := ev.Payload.(type) {
//	case event.Start:
//	case event.Stop:
//	case event.Address:
//	    _ = p.Byte
//	case event.Data:
//	case event.Result:
//	case event.Samples:
//	case event.Transition:
//	}
//
// Events are expected in non-decreasing StartTime order. Nothing in sigframe
// re-scans or re-orders them.
package event

import "fmt"

// Kind identifies the payload variant of an Event.
type Kind uint8

const (
	// KindUnknown is the zero value and is never produced by a valid Event.
	KindUnknown Kind = iota
	// KindStart is a bus start condition.
	KindStart
	// KindStop is a bus stop condition.
	KindStop
	// KindAddress is a bus address byte.
	KindAddress
	// KindData is a single data byte (serial or bus).
	KindData
	// KindResult is a full-duplex result with independent MISO/MOSI channels.
	KindResult
	// KindSamples is a block of analog samples.
	KindSamples
	// KindTransition is a digital logic-level transition.
	KindTransition
)

var kindNames = map[Kind]string{
	KindStart:      "start",
	KindStop:       "stop",
	KindAddress:    "address",
	KindData:       "data",
	KindResult:     "result",
	KindSamples:    "samples",
	KindTransition: "transition",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// ParseKind returns the Kind for a lower-case name, or KindUnknown.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}

	return KindUnknown
}

// Payload is the kind-specific content of an Event.
type Payload interface {
	kind() Kind
}

// Start is a bus start (or repeated start) condition.
type Start struct{}

// Stop is a bus stop condition.
type Stop struct{}

// Address is a bus address byte. For I2C the read/write flag is bit 0.
type Address struct {
	Byte byte
}

// Data is one data byte from a serial or bus analyzer.
type Data struct {
	Byte byte
}

// Result is one full-duplex transfer. A zero channel value means the
// channel carried nothing.
type Result struct {
	MISO byte
	MOSI byte
}

// Samples is a block of analog samples in volts.
type Samples struct {
	Values []float64
}

// Transition is a digital edge. Level is the logic level after the edge,
// so a true Level is a rising edge.
type Transition struct {
	Level bool
}

func (Start) kind() Kind      { return KindStart }
func (Stop) kind() Kind       { return KindStop }
func (Address) kind() Kind    { return KindAddress }
func (Data) kind() Kind       { return KindData }
func (Result) kind() Kind     { return KindResult }
func (Samples) kind() Kind    { return KindSamples }
func (Transition) kind() Kind { return KindTransition }

// Event is a single time-stamped capture event. Times are in seconds.
type Event struct {
	StartTime float64
	EndTime   float64
	Payload   Payload
}

// New creates an Event spanning [start, end].
func New(start, end float64, p Payload) Event {
	return Event{StartTime: start, EndTime: end, Payload: p}
}

// At creates a zero-length Event at t.
func At(t float64, p Payload) Event {
	return Event{StartTime: t, EndTime: t, Payload: p}
}

// Kind returns the payload kind, or KindUnknown for a nil payload.
func (e Event) Kind() Kind {
	if e.Payload == nil {
		return KindUnknown
	}

	return e.Payload.kind()
}

// String returns a compact human-readable form, used in debug logs.
func (e Event) String() string {
	switch p := e.Payload.(type) {
	case Address:
		return fmt.Sprintf("address(%#x)@%g", p.Byte, e.StartTime)
	case Data:
		return fmt.Sprintf("data(%#x)@%g", p.Byte, e.StartTime)
	case Result:
		return fmt.Sprintf("result(miso=%#x,mosi=%#x)@%g", p.MISO, p.MOSI, e.StartTime)
	case Samples:
		return fmt.Sprintf("samples(%d)@%g", len(p.Values), e.StartTime)
	case Transition:
		return fmt.Sprintf("transition(%t)@%g", p.Level, e.StartTime)
	default:
		return fmt.Sprintf("%s@%g", e.Kind(), e.StartTime)
	}
}
