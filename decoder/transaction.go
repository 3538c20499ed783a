package decoder

import (
	"fmt"
	"strings"

	"github.com/arloliu/sigframe/event"
)

// txState is the position of a tracker within a bus transaction.
type txState uint8

const (
	// txIdle: no transaction open. Only Start (or an Address, which opens
	// one implicitly) leaves this state.
	txIdle txState = iota
	// txOpen: Start seen, no address yet.
	txOpen
	// txAddressKnown: address byte seen, no data yet.
	txAddressKnown
	// txAccumulating: at least one data byte stored.
	txAccumulating
)

var txStateNames = [...]string{
	txIdle:         "idle",
	txOpen:         "open",
	txAddressKnown: "address_known",
	txAccumulating: "accumulating",
}

func (s txState) String() string {
	if int(s) < len(txStateNames) {
		return txStateNames[s]
	}

	return "unknown"
}

// multibyteRule selects which transaction direction carries the multibyte
// flag in the high bit of its first data byte.
type multibyteRule uint8

const (
	// multibyteOnRead: the first byte of a read transaction is flagged.
	multibyteOnRead multibyteRule = iota
	// multibyteOnWrite: the first byte of a write transaction (the register
	// pointer) is flagged, as on auto-incrementing register devices.
	multibyteOnWrite
)

// transaction is one bracketed start/stop exchange. It is sealed once end
// is set and is never modified afterwards.
type transaction struct {
	start       float64
	end         float64
	address     byte
	hasAddress  bool
	isRead      bool
	isMultibyte bool
	data        []byte
}

// addressHex formats the address like "0x41", or returns "" if none was seen.
func (t *transaction) addressHex() string {
	if !t.hasAddress {
		return ""
	}

	return fmt.Sprintf("%#x", t.address)
}

// dataHex formats the data bytes as "0x1, 0x2".
func (t *transaction) dataHex() string {
	parts := make([]string, len(t.data))
	for i, b := range t.data {
		parts[i] = fmt.Sprintf("%#x", b)
	}

	return strings.Join(parts, ", ")
}

// txTracker is the explicit finite-state machine shared by BusFramer and
// RegisterDecoder. It owns at most one open transaction and hands it over
// when a Stop seals it.
type txTracker struct {
	name  string
	rule  multibyteRule
	obs   observer
	state txState
	cur   transaction
}

func newTxTracker(name string, rule multibyteRule, obs observer) txTracker {
	return txTracker{name: name, rule: rule, obs: obs}
}

// observe advances the state machine with a bracket, address or data event.
// It returns the sealed transaction and true when ev is a Stop closing an
// open transaction. Other payload kinds are ignored.
func (t *txTracker) observe(ev event.Event) (transaction, bool) {
	switch p := ev.Payload.(type) {
	case event.Start:
		if t.state != txIdle {
			t.obs.drop(t.name, reasonRepeatedStart, ev)
		}
		t.open(ev.StartTime)

	case event.Address:
		if t.state == txIdle {
			t.obs.drop(t.name, reasonImplicitStart, ev)
			t.open(ev.StartTime)
		}
		t.cur.address = p.Byte
		t.cur.hasAddress = true
		t.cur.isRead = p.Byte&0x01 == 1
		if t.state == txOpen {
			t.state = txAddressKnown
		}

	case event.Data:
		if t.state == txIdle {
			t.obs.drop(t.name, reasonDataWithoutStart, ev)
			return transaction{}, false
		}
		t.appendData(p.Byte)
		t.state = txAccumulating

	case event.Stop:
		if t.state == txIdle {
			t.obs.drop(t.name, reasonStopWithoutStart, ev)
			return transaction{}, false
		}
		sealed := t.cur
		sealed.end = ev.EndTime
		t.state = txIdle
		t.cur = transaction{}

		return sealed, true
	}

	return transaction{}, false
}

func (t *txTracker) open(start float64) {
	t.cur = transaction{start: start}
	t.state = txOpen
}

func (t *txTracker) appendData(b byte) {
	if len(t.cur.data) == 0 && t.flagsFirstByte() && b&0x80 != 0 {
		t.cur.isMultibyte = true
		b &= 0x7F
	}
	t.cur.data = append(t.cur.data, b)
}

func (t *txTracker) flagsFirstByte() bool {
	if t.rule == multibyteOnRead {
		return t.cur.isRead
	}

	return !t.cur.isRead
}

// abandon discards any open transaction and reports whether one existed.
func (t *txTracker) abandon() bool {
	open := t.state != txIdle
	t.state = txIdle
	t.cur = transaction{}

	return open
}
