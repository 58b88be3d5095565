package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"periph.io/x/conn/v3/physic"

	"regcheck/bus"
	"regcheck/harness"
	"regcheck/led"
	"regcheck/log"
)

// harnessMain opens the bus and the LED panel, runs the checklist and
// reports the outcome.
func harnessMain(args RunCmd, cfg Config) {
	params := cfg.Tests.params()
	if args.Deterministic {
		params.Deterministic = true
	}
	if args.Seed != 0 {
		params.Seed = args.Seed
	}
	if !params.Deterministic && params.Seed == 0 {
		params.Seed = uint64(time.Now().UnixNano())
	}

	busName := cfg.Bus.Name
	if args.Bus != "" {
		busName = args.Bus
	}

	tr, err := bus.OpenI2C(busName, cfg.Bus.Addr, physic.Frequency(cfg.Bus.ClockKHz)*physic.KiloHertz)
	checkf(err, "failed to open i2c bus")
	defer tr.Close()

	panel, err := led.OpenPanel(cfg.Leds.Pins)
	checkf(err, "failed to open led panel")
	panel.Clear()

	log.ModHarness.InfoZ("starting conformance run").
		Bool("deterministic", params.Deterministic).
		Uint("seed", uint(params.Seed)).
		End()

	h := harness.New(tr, params)
	outcome := h.Run()

	if args.Report != "" {
		writeReport(args.Report, h, outcome, params)
	}

	rep := harness.Reporter{Panel: panel}
	rep.Announce(outcome)

	if args.StrictExit || cfg.General.StrictExit {
		os.Exit(int(outcome))
	}

	// Field behavior: hold the verdict on the panel until interrupted.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rep.Hold(ctx, outcome)
}

func writeReport(path string, h *harness.Harness, out harness.Outcome, p harness.Params) {
	f, err := os.Create(path)
	checkf(err, "failed to create report file")
	checkf(harness.WriteReport(f, h.TestNames(), out, p), "failed to write report")
	checkf(f.Close(), "failed to write report")
}

// planMain prints the checklist and the effective settings without
// touching the bus.
func planMain(cfg Config) {
	p := cfg.Tests.params()
	names, counts := harness.Plan(p)

	mode := "random"
	if p.Deterministic {
		mode = "deterministic"
	}
	fmt.Printf("device: address %#02x, bus %q, clock %d kHz\n", cfg.Bus.Addr, cfg.Bus.Name, cfg.Bus.ClockKHz)
	fmt.Printf("mode: %s\n", mode)
	for i, name := range names {
		fmt.Printf("test %d: %s (%d iterations)\n", i+1, name, counts[i])
	}
}
