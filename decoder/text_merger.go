package decoder

import (
	"fmt"

	"github.com/arloliu/sigframe/config"
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/frame"
)

// TextMergerName labels TextMerger in logs and metrics.
const TextMergerName = "text"

// TextMerger joins per-character serial and bus events into message frames.
//
// A message ends when the configured delimiter character arrives, when the
// gap since the previous character exceeds the timeout, when an address byte
// starts a new message, or on a Stop condition. Every message frame carries
// a "str" field with the raw text and a "display" field prefixed with the
// configured prefix.
//
// Note: TextMerger is NOT thread-safe.
type TextMerger struct {
	obs     observer
	delim   string
	timeout float64
	prefix  string

	open  bool
	start float64
	end   float64
	text  []byte
}

var _ frame.Transducer = (*TextMerger)(nil)

// NewTextMerger creates a TextMerger using the delimiter, timeout and prefix
// of cfg. A nil cfg selects config.Default().
func NewTextMerger(cfg *config.Config, opts ...Option) (*TextMerger, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		cfg = config.Default()
	}

	return &TextMerger{
		obs:     s.observer(),
		delim:   string(cfg.Delimiter().Rune()),
		timeout: cfg.Timeout(),
		prefix:  cfg.Prefix(),
	}, nil
}

// Process implements frame.Transducer. It never returns an error.
func (m *TextMerger) Process(ev event.Event) ([]frame.Frame, error) {
	var char string

	switch p := ev.Payload.(type) {
	case event.Data:
		char = string(rune(p.Byte))
	case event.Result:
		if p.MISO != 0 {
			char += string(rune(p.MISO))
		}
		if p.MOSI != 0 {
			char += string(rune(p.MOSI))
		}
	case event.Address, event.Start, event.Stop:
	default:
		m.obs.drop(TextMergerName, reasonUnsupportedEvent, ev)
		return nil, nil
	}

	existed := m.open
	if !m.open {
		m.reopen(ev)
	}

	switch p := ev.Payload.(type) {
	case event.Address:
		var out []frame.Frame
		if len(m.text) > 0 {
			out = append(out, m.frame())
			m.reopen(ev)
		}
		m.text = fmt.Appendf(m.text, "address: %#x;", p.Byte)

		return out, nil

	case event.Start:
		return nil, nil

	case event.Stop:
		var out []frame.Frame
		if len(m.text) > 0 {
			out = append(out, m.frame())
		}
		m.clear()

		return out, nil
	}

	var out []frame.Frame
	if existed && len(m.text) > 0 && m.end+m.timeout < ev.StartTime {
		out = append(out, m.frame())
		m.reopen(ev)
	}

	m.text = append(m.text, char...)
	m.end = ev.EndTime

	if char == m.delim {
		out = append(out, m.frame())
		m.clear()
	}

	return out, nil
}

// Flush implements frame.Transducer. It emits the pending message, if any.
func (m *TextMerger) Flush() []frame.Frame {
	if !m.open || len(m.text) == 0 {
		m.clear()
		return nil
	}

	f := m.frame()
	m.clear()
	m.obs.log.Info("sigframe: flushed pending message", "decoder", TextMergerName, "len", len(f.Text("str")))

	return []frame.Frame{f}
}

// Reset implements frame.Transducer.
func (m *TextMerger) Reset() {
	m.clear()
}

// Pending reports whether a message is currently being accumulated.
func (m *TextMerger) Pending() bool {
	return m.open && len(m.text) > 0
}

func (m *TextMerger) reopen(ev event.Event) {
	m.open = true
	m.start = ev.StartTime
	m.end = ev.EndTime
	m.text = m.text[:0]
}

func (m *TextMerger) clear() {
	m.open = false
	m.start, m.end = 0, 0
	m.text = m.text[:0]
}

// frame snapshots the pending message. The text is copied so m.text can be
// reused.
func (m *TextMerger) frame() frame.Frame {
	str := string(m.text)

	f := frame.New(frame.KindMessage, m.start, m.end)
	f.Fields["str"] = str
	f.Fields["display"] = m.prefix + str

	return f
}
