package decoder

import (
	"fmt"
	"strings"

	"github.com/arloliu/sigframe/errs"
	"github.com/arloliu/sigframe/event"
	"github.com/arloliu/sigframe/frame"
)

// RegisterDecoderName labels RegisterDecoder in logs and metrics.
const RegisterDecoderName = "register"

// FullScaleDegrees is the angular rate, in degrees per second, represented
// by the largest magnitude of a signed 16-bit axis sample.
const FullScaleDegrees = 180.0

// axis names a three-axis output as a little-endian register pair.
type axis struct {
	name  string
	field string
	low   string
	high  string
}

var axes = [...]axis{
	{name: "X", field: "rate_x", low: "OUT_X_L", high: "OUT_X_H"},
	{name: "Y", field: "rate_y", low: "OUT_Y_L", high: "OUT_Y_H"},
	{name: "Z", field: "rate_z", low: "OUT_Z_L", high: "OUT_Z_H"},
}

// RegisterDecoder pairs a register-pointer write with the read that follows
// it and names every byte read.
//
// A write transaction's first data byte is the base register (its high bit is
// the auto-increment flag and is stripped). Byte i of the next read is the
// value of register base+i. Each pair yields one "register_read" frame with:
//   - "registers": " NAME:value" per byte, in address order
//   - "angular_rate": " X:-180.00" per complete axis pair
//   - "base_register": the base address (uint8)
//   - "rate_x", "rate_y", "rate_z": the axis rates (float64), when present
//
// A read naming an address outside the map is a fatal decode error.
//
// Note: RegisterDecoder is NOT thread-safe.
type RegisterDecoder struct {
	obs       observer
	regs      RegisterMap
	tracker   txTracker
	lastWrite *transaction
}

var _ frame.Transducer = (*RegisterDecoder)(nil)

// NewRegisterDecoder creates a RegisterDecoder over regs.
//
// Returns errs.ErrEmptyRegisterMap if regs holds no registers.
func NewRegisterDecoder(regs RegisterMap, opts ...Option) (*RegisterDecoder, error) {
	if regs.Len() == 0 {
		return nil, errs.ErrEmptyRegisterMap
	}

	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	return &RegisterDecoder{
		obs:     s.observer(),
		regs:    regs,
		tracker: newTxTracker(RegisterDecoderName, multibyteOnWrite, s.observer()),
	}, nil
}

// NewGyroDecoder creates a RegisterDecoder over GyroRegisters.
func NewGyroDecoder(opts ...Option) (*RegisterDecoder, error) {
	return NewRegisterDecoder(GyroRegisters(), opts...)
}

// Process implements frame.Transducer.
//
// Returns an error wrapping errs.ErrUnknownRegister when a read runs past the
// register map. The pending write is discarded in that case.
func (d *RegisterDecoder) Process(ev event.Event) ([]frame.Frame, error) {
	switch ev.Payload.(type) {
	case event.Start, event.Stop, event.Address, event.Data:
	default:
		d.obs.drop(RegisterDecoderName, reasonUnsupportedEvent, ev)
		return nil, nil
	}

	tx, sealed := d.tracker.observe(ev)
	if !sealed {
		return nil, nil
	}

	if !tx.hasAddress {
		d.obs.drop(RegisterDecoderName, reasonNoAddress, ev)
		return nil, nil
	}

	if !tx.isRead {
		d.lastWrite = &tx
		return nil, nil
	}

	write := d.lastWrite
	d.lastWrite = nil

	if write == nil {
		d.obs.drop(RegisterDecoderName, reasonReadWithoutWrite, ev)
		return nil, nil
	}
	if len(write.data) == 0 {
		d.obs.drop(RegisterDecoderName, reasonEmptyPointer, ev)
		return nil, nil
	}

	f, err := d.decode(write, &tx)
	if err != nil {
		return nil, err
	}

	return []frame.Frame{f}, nil
}

// Flush implements frame.Transducer. Register reads are only emitted on the
// read's Stop, so there is never a pending frame.
func (d *RegisterDecoder) Flush() []frame.Frame {
	d.tracker.abandon()
	d.lastWrite = nil

	return nil
}

// Reset implements frame.Transducer.
func (d *RegisterDecoder) Reset() {
	d.tracker.abandon()
	d.lastWrite = nil
}

func (d *RegisterDecoder) decode(write, read *transaction) (frame.Frame, error) {
	base := write.data[0]
	values := make(map[string]byte, len(read.data))

	var regs strings.Builder
	for i, b := range read.data {
		addr := int(base) + i
		name, ok := "", false
		if addr <= 0xFF {
			name, ok = d.regs.Name(byte(addr))
		}
		if !ok {
			return frame.Frame{}, fmt.Errorf("%w: %#x (base %#x, offset %d)", errs.ErrUnknownRegister, addr, base, i)
		}

		values[name] = b
		fmt.Fprintf(&regs, " %s:%d", name, b)
	}

	f := frame.New(frame.KindRegisterRead, write.start, read.end)
	f.Fields["registers"] = regs.String()
	f.Fields["base_register"] = base

	var rates strings.Builder
	for _, a := range axes {
		lo, okLo := values[a.low]
		hi, okHi := values[a.high]
		if !okLo || !okHi {
			continue
		}

		rate := axisRate(lo, hi)
		f.Fields[a.field] = rate
		fmt.Fprintf(&rates, " %s:%.2f", a.name, rate)
	}
	f.Fields["angular_rate"] = rates.String()

	return f, nil
}

// axisRate converts a little-endian two's-complement sample to degrees per
// second.
func axisRate(lo, hi byte) float64 {
	v := int16(uint16(hi)<<8 | uint16(lo))
	return float64(v) / 32768 * FullScaleDegrees
}
