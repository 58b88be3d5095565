package led

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// GPIOPin drives one LED through a periph GPIO output.
type GPIOPin struct {
	pin gpio.PinOut
}

// OpenPin resolves a pin by name (e.g. "GPIO17") and configures it as
// an output, initially low.
func OpenPin(name string) (*GPIOPin, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no gpio pin named %q", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("configure %s as output: %w", name, err)
	}
	return &GPIOPin{pin: pin}, nil
}

func (p *GPIOPin) Set(on bool) error {
	return p.pin.Out(gpio.Level(on))
}

// OpenPanel opens the four panel pins by name, in bit order.
func OpenPanel(names [4]string) (*Panel, error) {
	pins := make([]Pin, 0, len(names))
	for _, name := range names {
		pin, err := OpenPin(name)
		if err != nil {
			return nil, err
		}
		pins = append(pins, pin)
	}
	return NewPanel(pins...), nil
}
