// Package decoder reconstructs higher-level frames from low-level capture
// events.
//
// Three transducers are provided, all implementing frame.Transducer:
//   - TextMerger joins character events into delimiter or timeout
//     separated messages.
//   - BusFramer groups start/address/data/stop events into bus transactions.
//   - RegisterDecoder pairs a register-pointer write with the following read
//     and names each byte through a RegisterMap (NewGyroDecoder presets the
//     L3G gyroscope map and reconstructs the angular rate).
//
// Transducers are fed one event at a time in capture order:
//
//	m, _ := decoder.NewTextMerger(cfg, decoder.WithLogger(slog.Default()))
//	for _, ev := range events {
//	    frames, err := m.Process(ev)
//	    ...
//	}
//	frames := m.Flush()
//
// Malformed input (a stop without a start, a read without a preceding write,
// an event of the wrong class) is dropped and reported at debug level through
// the configured SLogger. Only conditions that make the rest of the capture
// undecodable are returned as errors.
//
// Instances are NOT thread-safe. Independent instances share no mutable state.
package decoder
