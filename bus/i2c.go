package bus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"regcheck/log"
)

// I2C is the production Transport: a periph.io handle on the device
// under test.
type I2C struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// OpenI2C opens the named I2C bus ("" picks the first one registered)
// and binds it to the 7-bit slave address addr at the given clock.
func OpenI2C(name string, addr uint16, clock physic.Frequency) (*I2C, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}

	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	if err := b.SetSpeed(clock); err != nil {
		// Some adapters can't change speed, not fatal.
		log.ModBus.WarnZ("cannot set bus clock").
			Stringer("clock", clock).
			Error("err", err).
			End()
	}

	log.ModBus.InfoZ("i2c bus open").
		String("bus", b.String()).
		Hex16("addr", addr).
		End()

	return &I2C{bus: b, dev: &i2c.Dev{Bus: b, Addr: addr}}, nil
}

func (c *I2C) Write(p []byte) error {
	return c.dev.Tx(p, nil)
}

func (c *I2C) Read(p []byte) error {
	return c.dev.Tx(nil, p)
}

func (c *I2C) Close() error {
	return c.bus.Close()
}
