package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sigframe/config"
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/frame"
)

func newMerger(t *testing.T, opts ...config.Option) *TextMerger {
	t.Helper()

	cfg, err := config.New(opts...)
	require.NoError(t, err)

	m, err := NewTextMerger(cfg)
	require.NoError(t, err)

	return m
}

func dataAt(start, end float64, b byte) event.Event {
	return event.New(start, end, event.Data{Byte: b})
}

func TestTextMerger_Delimiter(t *testing.T) {
	m := newMerger(t)

	frames, err := feed(m,
		dataAt(0, 0.00005, 'a'),
		dataAt(0.0001, 0.00015, 'b'),
		dataAt(0.00015, 0.0002, '\n'),
	)
	require.NoError(t, err)
	require.Len(t, frames, 1)

	f := frames[0]
	require.Equal(t, frame.KindMessage, f.Kind)
	require.Equal(t, "ab\n", f.Text("str"))
	require.Equal(t, "ab\n", f.Text("display"))
	require.Equal(t, 0.0, f.StartTime)
	require.Equal(t, 0.0002, f.EndTime)
	require.False(t, m.Pending())
	require.Empty(t, m.Flush())
}

func TestTextMerger_Timeout(t *testing.T) {
	m := newMerger(t)

	frames, err := feed(m, dataAt(0, 0, 'a'), dataAt(10, 10, 'b'))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, "a", frames[0].Text("str"))
	require.Equal(t, 0.0, frames[0].StartTime)
	require.Equal(t, 0.0, frames[0].EndTime)

	require.True(t, m.Pending())
	flushed := m.Flush()
	require.Len(t, flushed, 1)
	require.Equal(t, "b", flushed[0].Text("str"))
	require.Equal(t, 10.0, flushed[0].StartTime)
	require.Equal(t, 10.0, flushed[0].EndTime)
	require.False(t, m.Pending())
}

func TestTextMerger_TimeoutThenDelimiter(t *testing.T) {
	m := newMerger(t)

	frames, err := feed(m, dataAt(0, 0, 'a'), dataAt(1, 1, '\n'))
	require.NoError(t, err)
	require.Len(t, frames, 2, "a timed-out message and the delimiter message from one event")
	require.Equal(t, "a", frames[0].Text("str"))
	require.Equal(t, "\n", frames[1].Text("str"))
	require.Equal(t, 1.0, frames[1].StartTime)
	require.Empty(t, m.Flush())
}

func TestTextMerger_GapWithinTimeout(t *testing.T) {
	m := newMerger(t, config.WithTimeout(0.01))

	frames, err := feed(m, dataAt(0, 0, 'a'), dataAt(0.009, 0.009, 'b'), dataAt(0.018, 0.018, 'c'))
	require.NoError(t, err)
	require.Empty(t, frames)

	flushed := m.Flush()
	require.Len(t, flushed, 1)
	require.Equal(t, "abc", flushed[0].Text("str"))
}

func TestTextMerger_CustomDelimiterAndPrefix(t *testing.T) {
	m := newMerger(t,
		config.WithDelimiter(config.DelimiterSemicolon),
		config.WithPrefix("uart0: "),
	)

	frames, err := feed(m, dataAt(0, 0, 'o'), dataAt(0, 0, 'k'), dataAt(0, 0, ';'), dataAt(0, 0, '\n'))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, "ok;", frames[0].Text("str"))
	require.Equal(t, "uart0: ok;", frames[0].Text("display"))

	flushed := m.Flush()
	require.Len(t, flushed, 1)
	require.Equal(t, "\n", flushed[0].Text("str"))
}

func TestTextMerger_NullDelimiter(t *testing.T) {
	m := newMerger(t, config.WithDelimiter(config.DelimiterNull))

	frames, err := feed(m, dataAt(0, 0, 'x'), dataAt(0, 0, 0))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, "x\x00", frames[0].Text("str"))
}

func TestTextMerger_Result(t *testing.T) {
	tests := []struct {
		name   string
		result event.Result
		want   string
	}{
		{name: "miso only", result: event.Result{MISO: 'h'}, want: "h"},
		{name: "mosi only", result: event.Result{MOSI: 'i'}, want: "i"},
		{name: "both channels", result: event.Result{MISO: 'h', MOSI: 'i'}, want: "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMerger(t)

			frames, err := m.Process(event.At(0, tt.result))
			require.NoError(t, err)
			require.Empty(t, frames)

			flushed := m.Flush()
			require.Len(t, flushed, 1)
			require.Equal(t, tt.want, flushed[0].Text("str"))
		})
	}
}

func TestTextMerger_AddressStartsNewMessage(t *testing.T) {
	m := newMerger(t)

	frames, err := feed(m,
		dataAt(0, 0.1, 'x'),
		event.New(0.2, 0.3, event.Address{Byte: 0x41}),
	)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, "x", frames[0].Text("str"))

	frames, err = m.Process(event.At(0.4, event.Stop{}))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, "address: 0x41;", frames[0].Text("str"))
	require.Equal(t, 0.2, frames[0].StartTime)
	require.Equal(t, 0.3, frames[0].EndTime, "the address seed keeps its own end time")
	require.False(t, m.Pending())
}

func TestTextMerger_StartAndStop(t *testing.T) {
	m := newMerger(t)

	frames, err := feed(m,
		event.At(0, event.Start{}),
		dataAt(0.0001, 0.0002, 'h'),
		dataAt(0.0002, 0.0003, 'i'),
		event.At(0.0004, event.Stop{}),
	)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, "hi", frames[0].Text("str"))
	require.Equal(t, 0.0, frames[0].StartTime, "the message is anchored at the start condition")
	require.Equal(t, 0.0003, frames[0].EndTime)

	frames, err = m.Process(event.At(1, event.Stop{}))
	require.NoError(t, err)
	require.Empty(t, frames, "an empty pending message is not emitted")
}

func TestTextMerger_DropsUnsupportedEvents(t *testing.T) {
	logger, records := newCapturingLogger()

	m, err := NewTextMerger(nil, WithLogger(logger))
	require.NoError(t, err)

	frames, err := feed(m,
		event.At(0, event.Samples{Values: []float64{1, 2}}),
		event.At(0, event.Transition{Level: true}),
	)
	require.NoError(t, err)
	require.Empty(t, frames)
	require.False(t, m.Pending())
	require.Equal(t, []string{reasonUnsupportedEvent, reasonUnsupportedEvent}, dropReasons(*records))
}

func TestTextMerger_Reset(t *testing.T) {
	m := newMerger(t)

	_, err := m.Process(dataAt(0, 0, 'a'))
	require.NoError(t, err)
	require.True(t, m.Pending())

	m.Reset()
	require.False(t, m.Pending())
	require.Empty(t, m.Flush())

	frames, err := feed(m, dataAt(5, 5, 'b'), dataAt(5, 5, '\n'))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, "b\n", frames[0].Text("str"))
	require.Equal(t, 5.0, frames[0].StartTime)
}

func TestTextMerger_FramesAreIndependent(t *testing.T) {
	m := newMerger(t)

	first, err := feed(m, dataAt(0, 0, 'a'), dataAt(0, 0, '\n'))
	require.NoError(t, err)
	_, err = feed(m, dataAt(0, 0, 'z'), dataAt(0, 0, '\n'))
	require.NoError(t, err)

	require.Equal(t, "a\n", first[0].Text("str"), "later input must not alias earlier frames")
}

func BenchmarkTextMerger_Process(b *testing.B) {
	m, err := NewTextMerger(nil)
	require.NoError(b, err)

	line := []byte("the quick brown fox\n")
	events := make([]event.Event, len(line))
	for i, c := range line {
		ts := float64(i) * 1e-5
		events[i] = event.New(ts, ts+1e-5, event.Data{Byte: c})
	}

	b.ReportAllocs()
	for b.Loop() {
		for _, ev := range events {
			_, _ = m.Process(ev)
		}
	}
}
