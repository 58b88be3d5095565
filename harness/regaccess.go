// Package harness checks that the device under test implements its
// register read/write contract, including boundary behavior for
// invalid register addresses.
package harness

import (
	"fmt"

	"regcheck/bus"
	"regcheck/log"
)

// NumRegisters is the size of the device register bank.
const NumRegisters = 5

// Reg0Mask covers the meaningful bits of register 0: only the low
// nibble is backed by storage, the high nibble is device-defined.
const Reg0Mask = 0x0F

// RegisterAccess frames register operations onto the raw transport.
type RegisterAccess struct {
	tr bus.Transport
}

func NewRegisterAccess(tr bus.Transport) *RegisterAccess {
	return &RegisterAccess{tr: tr}
}

// WriteRegister issues a single 2-byte transaction [addr, val].
func (ra *RegisterAccess) WriteRegister(addr, val uint8) error {
	if err := ra.tr.Write([]byte{addr, val}); err != nil {
		return fmt.Errorf("write register %#02x: %w", addr, err)
	}
	log.ModBus.DebugZ("register write").Hex8("reg", addr).Hex8("val", val).End()
	return nil
}

// ReadRegister selects addr with a 1-byte write, then reads one byte.
// The device expects this two-phase sequence for every register read.
func (ra *RegisterAccess) ReadRegister(addr uint8) (uint8, error) {
	if err := ra.tr.Write([]byte{addr}); err != nil {
		return 0, fmt.Errorf("select register %#02x: %w", addr, err)
	}
	var buf [1]byte
	if err := ra.tr.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read register %#02x: %w", addr, err)
	}
	log.ModBus.DebugZ("register read").Hex8("reg", addr).Hex8("val", buf[0]).End()
	return buf[0], nil
}

// RawRead performs a 1-byte bus read with no preceding register
// select, returning whatever the device exposes as its default read
// value.
func (ra *RegisterAccess) RawRead() (uint8, error) {
	var buf [1]byte
	if err := ra.tr.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("raw read: %w", err)
	}
	log.ModBus.DebugZ("raw read").Hex8("val", buf[0]).End()
	return buf[0], nil
}
