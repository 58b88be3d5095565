// Package led drives the 4-LED status panel the harness reports
// through when no console is attached.
package led

import (
	"context"
	"time"

	"regcheck/log"
)

// Pin is a single binary output.
type Pin interface {
	Set(on bool) error
}

// Panel is the status indicator: one LED per bit, bit 0 driving the
// first pin. With 4 pins it can display the index of any of up to 15
// failing test cases.
type Panel struct {
	pins []Pin
}

func NewPanel(pins ...Pin) *Panel {
	return &Panel{pins: pins}
}

// Show displays the low bits of n in binary on the panel.
func (p *Panel) Show(n uint8) {
	p.set(n)
}

// Clear switches every LED off.
func (p *Panel) Clear() {
	p.set(0)
}

func (p *Panel) set(n uint8) {
	for i, pin := range p.pins {
		if err := pin.Set(n&(1<<i) != 0); err != nil {
			log.ModLed.WarnZ("cannot drive led").
				Int("led", i).
				Error("err", err).
				End()
		}
	}
}

// Flash blinks all LEDs together, period/2 on then period/2 off, until
// ctx is cancelled. This is the "everything green" indication for a
// headless board; it does not terminate on its own.
func (p *Panel) Flash(ctx context.Context, period time.Duration) {
	tick := time.NewTicker(period / 2)
	defer tick.Stop()

	on := true
	for {
		if on {
			p.set(1<<len(p.pins) - 1)
		} else {
			p.Clear()
		}
		on = !on

		select {
		case <-ctx.Done():
			p.Clear()
			return
		case <-tick.C:
		}
	}
}
