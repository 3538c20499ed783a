package metric

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/sigframe/decoder"
	"github.com/arloliu/sigframe/errs"
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/frame"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	return m, reg
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	_, reg := newTestMetrics(t)

	_, err := NewMetrics(reg)
	require.Error(t, err)

	var already prometheus.AlreadyRegisteredError
	require.ErrorAs(t, err, &already)
}

func TestInstrument_CountsEventsAndFrames(t *testing.T) {
	m, _ := newTestMetrics(t)

	framer, err := decoder.NewBusFramer(decoder.WithRecorder(m))
	require.NoError(t, err)
	tr := Instrument("bus", framer, m)

	events := []event.Event{
		event.At(0, event.Stop{}),
		event.At(1, event.Start{}),
		event.At(2, event.Address{Byte: 0x40}),
		event.At(3, event.Data{Byte: 0x01}),
		event.At(4, event.Stop{}),
		event.At(5, event.Start{}),
		event.At(6, event.Address{Byte: 0x40}),
		event.At(7, event.Stop{}),
	}
	for _, ev := range events {
		_, err := tr.Process(ev)
		require.NoError(t, err)
	}
	require.Empty(t, tr.Flush())

	require.InDelta(t, 3.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("bus", "stop")), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("bus", "data")), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(m.FramesTotal.WithLabelValues("bus", frame.KindTransaction)), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(m.FramesTotal.WithLabelValues("bus", frame.KindError)), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(m.DroppedTotal.WithLabelValues("bus", "stop_without_start")), 1e-9)
}

func TestInstrument_CountsErrors(t *testing.T) {
	m, _ := newTestMetrics(t)

	gyro, err := decoder.NewGyroDecoder()
	require.NoError(t, err)
	tr := Instrument("gyro", gyro, m)

	// Write pointer 0x3F is past the end of the gyro map.
	events := []event.Event{
		event.At(0, event.Start{}),
		event.At(1, event.Address{Byte: 0xD6}),
		event.At(2, event.Data{Byte: 0x3F}),
		event.At(3, event.Stop{}),
		event.At(4, event.Start{}),
		event.At(5, event.Address{Byte: 0xD7}),
		event.At(6, event.Data{Byte: 0x00}),
		event.At(7, event.Stop{}),
	}

	var lastErr error
	for _, ev := range events {
		if _, err := tr.Process(ev); err != nil {
			lastErr = err
		}
	}
	require.ErrorIs(t, lastErr, errs.ErrUnknownRegister)
	require.InDelta(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("gyro")), 1e-9)
}

func TestInstrument_NilMetrics(t *testing.T) {
	framer, err := decoder.NewBusFramer()
	require.NoError(t, err)

	require.Same(t, framer, Instrument("bus", framer, nil))
}

func TestWriteText(t *testing.T) {
	m, reg := newTestMetrics(t)
	m.EventDropped("text", "unsupported_event")

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	require.Contains(t, buf.String(), `sigframe_decoder_dropped_events_total{decoder="text",reason="unsupported_event"} 1`)
}
