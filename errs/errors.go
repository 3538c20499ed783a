// Package errs defines the sentinel errors returned by sigframe packages.
//
// Callers should match them with errors.Is; most are wrapped with additional
// context (the offending value, file path or register address) before being
// returned.
package errs

import "errors"

// Configuration errors. These are only returned at construction time.
var (
	// ErrInvalidDelimiter is returned when a delimiter is not one of the supported choices.
	ErrInvalidDelimiter = errors.New("invalid packet delimiter")
	// ErrInvalidTimeout is returned when the packet timeout is outside [1e-6, 1e4] seconds.
	ErrInvalidTimeout = errors.New("packet timeout out of range")
	// ErrUnknownMeasurement is returned when a measurement name is not recognized.
	ErrUnknownMeasurement = errors.New("unknown measurement")
	// ErrUnsupportedConfigFormat is returned when a config file extension is not .toml, .yaml or .yml.
	ErrUnsupportedConfigFormat = errors.New("unsupported config file format")
	// ErrEmptyRegisterMap is returned when a register decoder is built without registers.
	ErrEmptyRegisterMap = errors.New("register map is empty")
)

// Decode errors. Only fatal conditions are reported; recoverable anomalies
// such as a stop condition without a start are dropped by the decoders.
var (
	// ErrUnknownRegister is returned when a read maps a byte to an address absent from the register map.
	ErrUnknownRegister = errors.New("unknown register address")
)

// Capture errors.
var (
	// ErrUnknownEventType is returned when a capture record carries an unrecognized type.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrMalformedEvent is returned when a capture record is missing a required field.
	ErrMalformedEvent = errors.New("malformed event")
	// ErrUnsupportedCompression is returned for an unknown compression type.
	ErrUnsupportedCompression = errors.New("unsupported compression")
)
