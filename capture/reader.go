// Package capture reads capture events from JSON lines files and writes
// decoded frames back out in the same line-oriented form.
//
// Each input line is one event object:
//
//	{"type":"start","start_time":0.0001,"end_time":0.0001}
//	{"type":"address","start_time":0.0002,"end_time":0.0003,"address":65}
//	{"type":"data","start_time":0.0003,"end_time":0.0004,"value":1}
//	{"type":"result","start_time":0.1,"end_time":0.2,"miso":104,"mosi":0}
//	{"type":"samples","start_time":1.0,"end_time":1.5,"samples":[0.1,0.2]}
//	{"type":"transition","time":2.5,"level":true}
//
// "time" is accepted wherever start_time and end_time would be equal. Blank
// lines and lines starting with '#' are ignored. Files ending in .zst, .s2,
// .sz or .lz4 are decompressed before parsing.
//
// WithStrictSchema additionally validates every line against EventSchema,
// which rejects unknown fields and out-of-range byte values that the default
// decoder would ignore or report less precisely.
package capture

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/arloliu/sigframe/compress"
	"github.com/arloliu/sigframe/errs"
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/internal/options"
)

// maxLineSize bounds a single event line; sample blocks make lines long.
const maxLineSize = 16 * 1024 * 1024

// Reader yields the events of one capture in file order.
//
// Note: Reader is NOT thread-safe and can be iterated only once.
type Reader struct {
	sc     *bufio.Scanner
	line   int
	strict bool
	schema *jsonschema.Schema
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*Reader]

// WithStrictSchema validates every line against EventSchema before decoding.
// Schema violations are reported as errs.ErrMalformedEvent.
func WithStrictSchema() ReaderOption {
	return options.New(func(r *Reader) error {
		schema, err := EventSchema()
		if err != nil {
			return err
		}
		r.strict = true
		r.schema = schema

		return nil
	})
}

// Open reads and, if needed, decompresses the capture at path.
func Open(path string, opts ...ReaderOption) (*Reader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}

	codec, ct := compress.ForPath(path)
	data, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress %s capture %s: %w", ct, path, err)
	}

	return Parse(bytes.NewReader(data), opts...)
}

// Parse returns a Reader over uncompressed JSON lines from r.
func Parse(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	rd := &Reader{sc: sc}
	if err := options.Apply(rd, opts...); err != nil {
		return nil, err
	}

	return rd, nil
}

// All returns a sequence of events. Iteration stops after the first error,
// which is yielded with a zero Event and carries the 1-based line number.
//
// Example:
//
//	for ev, err := range r.All() {
//	    if err != nil {
//	        return err
//	    }
//	    frames, err := tr.Process(ev)
//	    ...
//	}
func (r *Reader) All() iter.Seq2[event.Event, error] {
	return func(yield func(event.Event, error) bool) {
		for r.sc.Scan() {
			r.line++

			line := bytes.TrimSpace(r.sc.Bytes())
			if len(line) == 0 || line[0] == '#' {
				continue
			}

			ev, err := r.decode(line)
			if err != nil {
				yield(event.Event{}, fmt.Errorf("capture line %d: %w", r.line, err))
				return
			}

			if !yield(ev, nil) {
				return
			}
		}

		if err := r.sc.Err(); err != nil {
			yield(event.Event{}, fmt.Errorf("capture line %d: %w", r.line+1, err))
		}
	}
}

// ReadAll collects every event of r.
func (r *Reader) ReadAll() ([]event.Event, error) {
	var events []event.Event
	for ev, err := range r.All() {
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, nil
}

func (r *Reader) decode(line []byte) (event.Event, error) {
	if r.strict {
		if err := validateLine(r.schema, line); err != nil {
			return event.Event{}, err
		}
	}

	return decodeLine(line)
}

// record is the JSON shape of one event line. Pointers distinguish absent
// fields from zero values.
type record struct {
	Type      string    `json:"type"`
	StartTime *float64  `json:"start_time"`
	EndTime   *float64  `json:"end_time"`
	Time      *float64  `json:"time"`
	Address   *uint8    `json:"address"`
	Value     *uint8    `json:"value"`
	MISO      *uint8    `json:"miso"`
	MOSI      *uint8    `json:"mosi"`
	Samples   []float64 `json:"samples"`
	Level     *bool     `json:"level"`
}

func decodeLine(line []byte) (event.Event, error) {
	var rec record
	if err := json.Unmarshal(line, &rec); err != nil {
		return event.Event{}, fmt.Errorf("%w: %w", errs.ErrMalformedEvent, err)
	}

	kind := event.ParseKind(rec.Type)
	if kind == event.KindUnknown {
		return event.Event{}, fmt.Errorf("%w: %q", errs.ErrUnknownEventType, rec.Type)
	}

	start, end, err := rec.span()
	if err != nil {
		return event.Event{}, err
	}

	p, err := rec.payload(kind)
	if err != nil {
		return event.Event{}, err
	}

	return event.New(start, end, p), nil
}

func (rec *record) span() (float64, float64, error) {
	start := rec.StartTime
	if start == nil {
		start = rec.Time
	}
	if start == nil {
		return 0, 0, fmt.Errorf("%w: %s event without start_time", errs.ErrMalformedEvent, rec.Type)
	}

	end := rec.EndTime
	if end == nil {
		end = rec.Time
	}
	if end == nil {
		end = start
	}

	if *end < *start {
		return 0, 0, fmt.Errorf("%w: end_time %g before start_time %g", errs.ErrMalformedEvent, *end, *start)
	}

	return *start, *end, nil
}

func (rec *record) payload(kind event.Kind) (event.Payload, error) {
	switch kind {
	case event.KindStart:
		return event.Start{}, nil
	case event.KindStop:
		return event.Stop{}, nil
	case event.KindAddress:
		if rec.Address == nil {
			return nil, missing(kind, "address")
		}
		return event.Address{Byte: *rec.Address}, nil
	case event.KindData:
		if rec.Value == nil {
			return nil, missing(kind, "value")
		}
		return event.Data{Byte: *rec.Value}, nil
	case event.KindResult:
		var p event.Result
		if rec.MISO != nil {
			p.MISO = *rec.MISO
		}
		if rec.MOSI != nil {
			p.MOSI = *rec.MOSI
		}
		return p, nil
	case event.KindSamples:
		if rec.Samples == nil {
			return nil, missing(kind, "samples")
		}
		return event.Samples{Values: rec.Samples}, nil
	case event.KindTransition:
		if rec.Level == nil {
			return nil, missing(kind, "level")
		}
		return event.Transition{Level: *rec.Level}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownEventType, kind)
	}
}

func missing(kind event.Kind, field string) error {
	return fmt.Errorf("%w: %s event without %s", errs.ErrMalformedEvent, kind, field)
}
