package harness

import "errors"

// reg0Noise is what the simulated device exposes on the high nibble of
// register 0. It is there to make sure nothing ever compares those
// bits.
const reg0Noise = 0xA0

// simDevice emulates a conforming device behind the bus.Transport
// interface: a 5-register bank with a nibble-backed register 0, a
// register-select latch feeding reads, and a read latch cleared by any
// write targeting an undefined address.
type simDevice struct {
	regs     [NumRegisters]uint8
	readData uint8
}

func (d *simDevice) Write(p []byte) error {
	switch len(p) {
	case 1: // register select
		d.readData = d.peek(p[0])
	case 2:
		addr, val := p[0], p[1]
		if addr >= NumRegisters {
			d.readData = 0
			return nil
		}
		if addr == 0 {
			val &= Reg0Mask
		}
		d.regs[addr] = val
		d.readData = d.peek(addr)
	}
	return nil
}

func (d *simDevice) Read(p []byte) error {
	for i := range p {
		p[i] = d.readData
	}
	return nil
}

func (d *simDevice) peek(addr uint8) uint8 {
	if addr >= NumRegisters {
		return 0
	}
	if addr == 0 {
		return d.regs[0] | reg0Noise
	}
	return d.regs[addr]
}

// stuckDevice holds register 2 at a fixed value, tripping the first
// round-trip check.
type stuckDevice struct {
	simDevice
}

func (d *stuckDevice) Write(p []byte) error {
	if err := d.simDevice.Write(p); err != nil {
		return err
	}
	d.regs[2] = 0x42
	return nil
}

// nibbleDevice drops bit 0 of register 0 writes, breaking the masked
// round-trip check without touching registers 1-4.
type nibbleDevice struct {
	simDevice
}

func (d *nibbleDevice) Write(p []byte) error {
	if err := d.simDevice.Write(p); err != nil {
		return err
	}
	d.regs[0] &^= 0x01
	return nil
}

// leakyDevice leaks every valid register write into the next register,
// which only the cross-register isolation check can see.
type leakyDevice struct {
	simDevice
}

func (d *leakyDevice) Write(p []byte) error {
	if len(p) == 2 && p[0] < NumRegisters {
		next := (p[0] + 1) % NumRegisters
		d.regs[next] = p[1] | 1 // |1 so a zero write still perturbs
	}
	return d.simDevice.Write(p)
}

// stickyDevice folds invalid register addresses back into the bank
// instead of ignoring them.
type stickyDevice struct {
	simDevice
}

func (d *stickyDevice) Write(p []byte) error {
	if len(p) == 2 && p[0] >= NumRegisters {
		d.regs[p[0]%NumRegisters] = p[1]
		d.readData = 0
		return nil
	}
	return d.simDevice.Write(p)
}

// latchDevice forgets to clear its read latch on invalid writes: the
// raw read after one returns the written value instead of zero.
type latchDevice struct {
	simDevice
}

func (d *latchDevice) Write(p []byte) error {
	if len(p) == 2 && p[0] >= NumRegisters {
		d.readData = p[1] | 1
		return nil
	}
	return d.simDevice.Write(p)
}

var errBusStuck = errors.New("bus stuck")

// failingTransport errors every bus operation once fuel runs out.
type failingTransport struct {
	simDevice
	fuel int // operations before the first failure
}

func (d *failingTransport) Write(p []byte) error {
	if d.fuel--; d.fuel < 0 {
		return errBusStuck
	}
	return d.simDevice.Write(p)
}

func (d *failingTransport) Read(p []byte) error {
	if d.fuel--; d.fuel < 0 {
		return errBusStuck
	}
	return d.simDevice.Read(p)
}
