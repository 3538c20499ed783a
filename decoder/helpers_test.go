package decoder

import (
	"context"
	"log/slog"

	"github.com/bassosimone/slogstub"

	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/frame"
)

// newCapturingLogger returns a logger that captures every record into the
// returned slice.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}

	return slog.New(handler), &records
}

// dropReasons returns the "reason" attribute of every captured record.
func dropReasons(records []slog.Record) []string {
	var reasons []string
	for _, r := range records {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == "reason" {
				reasons = append(reasons, a.Value.String())
				return false
			}
			return true
		})
	}

	return reasons
}

// feed runs events through tr and collects every emitted frame.
func feed(tr frame.Transducer, events ...event.Event) ([]frame.Frame, error) {
	var out []frame.Frame
	for _, ev := range events {
		fs, err := tr.Process(ev)
		if err != nil {
			return out, err
		}
		out = append(out, fs...)
	}

	return out, nil
}

// busTx builds a bracketed transaction starting at t with one event per
// 0.1 ms.
func busTx(t float64, addr byte, data ...byte) []event.Event {
	const step = 1e-4

	evs := []event.Event{
		event.At(t, event.Start{}),
		event.New(t+step, t+2*step, event.Address{Byte: addr}),
	}
	t += 2 * step
	for _, b := range data {
		evs = append(evs, event.New(t, t+step, event.Data{Byte: b}))
		t += step
	}

	return append(evs, event.At(t+step, event.Stop{}))
}
