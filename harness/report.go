package harness

import (
	"context"
	"io"
	"time"

	"github.com/go-faster/jx"

	"regcheck/led"
	"regcheck/log"
)

// FlashPeriod is the success blink cycle: half on, half off.
const FlashPeriod = 200 * time.Millisecond

// Reporter maps a run outcome to the LED panel and the console.
type Reporter struct {
	Panel *led.Panel
}

// Announce logs the final verdict and drives the panel to its static
// representation: all clear on success, the 1-based failing test index
// in binary on failure.
func (r *Reporter) Announce(out Outcome) {
	if out == Passed {
		log.ModHarness.Infof("All tests passed.")
		r.Panel.Clear()
		return
	}
	r.Panel.Show(uint8(out))
}

// Hold keeps the outcome visible until ctx is cancelled: perpetual
// flash on success, failing index latched on failure. A headless board
// shows its verdict this way until powered off.
func (r *Reporter) Hold(ctx context.Context, out Outcome) {
	if out == Passed {
		r.Panel.Flash(ctx, FlashPeriod)
		return
	}
	<-ctx.Done()
	r.Panel.Clear()
}

// WriteReport writes a machine-readable summary of a run, for CI jobs
// that cannot watch the panel.
func WriteReport(w io.Writer, names []string, out Outcome, p Params) error {
	status := func(i int) string {
		switch {
		case out == Passed || i+1 < int(out):
			return "pass"
		case i+1 == int(out):
			return "fail"
		default:
			return "skipped"
		}
	}

	var e jx.Encoder
	e.SetIdent(2)
	e.Obj(func(e *jx.Encoder) {
		e.Field("passed", func(e *jx.Encoder) { e.Bool(out == Passed) })
		e.Field("failed_test", func(e *jx.Encoder) { e.Int(int(out)) })
		e.Field("deterministic", func(e *jx.Encoder) { e.Bool(p.Deterministic) })
		e.Field("seed", func(e *jx.Encoder) { e.UInt64(p.Seed) })
		e.Field("tests", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i, name := range names {
					e.Obj(func(e *jx.Encoder) {
						e.Field("index", func(e *jx.Encoder) { e.Int(i + 1) })
						e.Field("name", func(e *jx.Encoder) { e.Str(name) })
						e.Field("status", func(e *jx.Encoder) { e.Str(status(i)) })
					})
				}
			})
		})
	})

	_, err := w.Write(append(e.Bytes(), '\n'))
	return err
}
