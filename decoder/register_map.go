package decoder

import (
	"maps"
	"slices"

	"github.com/arloliu/sigframe/errs"
)

// RegisterMap is a read-only lookup from register address to name.
//
// The zero value is an empty map. Copies of a RegisterMap share the same
// underlying table, which is never modified after construction.
type RegisterMap struct {
	names map[byte]string
}

// NewRegisterMap builds a RegisterMap from a copy of names.
//
// Returns errs.ErrEmptyRegisterMap if names is empty.
func NewRegisterMap(names map[byte]string) (RegisterMap, error) {
	if len(names) == 0 {
		return RegisterMap{}, errs.ErrEmptyRegisterMap
	}

	return RegisterMap{names: maps.Clone(names)}, nil
}

// Name returns the register name at addr.
func (m RegisterMap) Name(addr byte) (string, bool) {
	name, ok := m.names[addr]
	return name, ok
}

// Len returns the number of registers.
func (m RegisterMap) Len() int {
	return len(m.names)
}

// Addresses returns the register addresses in ascending order.
func (m RegisterMap) Addresses() []byte {
	return slices.Sorted(maps.Keys(m.names))
}

// gyroRegisters is the L3G-family three-axis gyroscope register file.
var gyroRegisters = RegisterMap{names: map[byte]string{
	0x20: "CTRL_REG1",
	0x21: "CTRL_REG2",
	0x22: "CTRL_REG3",
	0x23: "CTRL_REG4",
	0x24: "CTRL_REG5",
	0x25: "REFERENCE",
	0x26: "OUT_TEMP",
	0x27: "STATUS_REG",
	0x28: "OUT_X_L",
	0x29: "OUT_X_H",
	0x2A: "OUT_Y_L",
	0x2B: "OUT_Y_H",
	0x2C: "OUT_Z_L",
	0x2D: "OUT_Z_H",
	0x2E: "FIFO_CTRL_REG",
	0x2F: "FIFO_SRC_REG",
	0x30: "INT1_CFG",
	0x31: "INT1_SRC",
	0x32: "INT1_TSH_XH",
	0x33: "INT1_TSH_XL",
	0x34: "INT1_TSH_YH",
	0x35: "INT1_TSH_YL",
	0x36: "INT1_TSH_ZH",
	0x37: "INT1_TSH_ZL",
	0x38: "INT1_DURATION",
}}

// GyroRegisters returns the L3G-family gyroscope register map (0x20..0x38).
func GyroRegisters() RegisterMap {
	return gyroRegisters
}
