package decoder

import (
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/frame"
)

// BusFramerName labels BusFramer in logs and metrics.
const BusFramerName = "bus"

// BusFramer groups start/address/data/stop events into one frame per bus
// transaction.
//
// A completed transaction yields a "transaction" frame with fields
// "address" ("0x41"), "data" ("0x1, 0x2") and "count". A transaction closed
// before any data byte yields an "error" frame whose "address" is the
// formatted address, or "error" when none was seen.
//
// Note: BusFramer is NOT thread-safe.
type BusFramer struct {
	obs     observer
	tracker txTracker
}

var _ frame.Transducer = (*BusFramer)(nil)

// NewBusFramer creates a BusFramer.
func NewBusFramer(opts ...Option) (*BusFramer, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	return &BusFramer{
		obs:     s.observer(),
		tracker: newTxTracker(BusFramerName, multibyteOnRead, s.observer()),
	}, nil
}

// Process implements frame.Transducer. It never returns an error.
func (b *BusFramer) Process(ev event.Event) ([]frame.Frame, error) {
	switch ev.Payload.(type) {
	case event.Start, event.Stop, event.Address, event.Data:
	default:
		b.obs.drop(BusFramerName, reasonUnsupportedEvent, ev)
		return nil, nil
	}

	tx, sealed := b.tracker.observe(ev)
	if !sealed {
		return nil, nil
	}

	return []frame.Frame{transactionFrame(&tx)}, nil
}

// Flush implements frame.Transducer. A transaction without its Stop is
// discarded.
func (b *BusFramer) Flush() []frame.Frame {
	if b.tracker.abandon() {
		b.obs.log.Info("sigframe: discarded unterminated transaction", "decoder", BusFramerName)
	}

	return nil
}

// Reset implements frame.Transducer.
func (b *BusFramer) Reset() {
	b.tracker.abandon()
}

func transactionFrame(tx *transaction) frame.Frame {
	if len(tx.data) == 0 {
		f := frame.New(frame.KindError, tx.start, tx.end)
		f.Fields["address"] = "error"
		if tx.hasAddress {
			f.Fields["address"] = tx.addressHex()
		}
		f.Fields["data"] = ""
		f.Fields["count"] = 0

		return f
	}

	f := frame.New(frame.KindTransaction, tx.start, tx.end)
	if tx.hasAddress {
		f.Fields["address"] = tx.addressHex()
	}
	f.Fields["data"] = tx.dataHex()
	f.Fields["count"] = len(tx.data)

	return f
}
