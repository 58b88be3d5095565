package harness

import (
	"errors"

	"regcheck/bus"
	"regcheck/log"
)

// Outcome of a full run: Passed when every check succeeded, otherwise
// the 1-based index of the first failing test.
type Outcome int

const Passed Outcome = 0

func (o Outcome) Failed() bool { return o != Passed }

// Harness walks the conformance checklist against one device. All the
// resources it drives (the transport, hence the bus) are handed to it
// at construction, it owns no process-wide state.
type Harness struct {
	ra    *RegisterAccess
	tests []Test
}

func New(tr bus.Transport, p Params) *Harness {
	ra := NewRegisterAccess(tr)
	return &Harness{ra: ra, tests: Tests(ra, p)}
}

// TestNames returns the checklist in execution order.
func (h *Harness) TestNames() []string {
	names := make([]string, len(h.tests))
	for i, tc := range h.tests {
		names[i] = tc.Name
	}
	return names
}

// Run executes the checklist in order and stops at the first failure:
// each test starts pending, runs once, and moves the harness to the
// next test or to the terminal failed state. A failed case is never
// retried and later cases never run, since they assume the invariants
// established before them.
func (h *Harness) Run() Outcome {
	for i, tc := range h.tests {
		tctx := &testContext{idx: i + 1, name: tc.Name}
		log.AddContext(tctx)
		err := tc.Run()
		log.RemoveContext(tctx)

		if err != nil {
			logFailure(err)
			log.ModHarness.Infof("test %d: %s: FAIL", i+1, tc.Name)
			return Outcome(i + 1)
		}
		log.ModHarness.Infof("test %d: %s: PASS", i+1, tc.Name)
	}
	return Passed
}

func logFailure(err error) {
	var f *Failure
	if !errors.As(err, &f) {
		log.ModHarness.ErrorZ("test failure").Error("err", err).End()
		return
	}

	e := log.ModHarness.ErrorZ("test failure").
		Stringer("kind", f.Kind).
		Uint("register", uint(f.Register))
	if f.Kind == KindTransport {
		e.Error("err", f.Err).End()
		return
	}
	e.Hex8("wrote", f.Wrote).Hex8("read", f.Read).End()
}

// testContext tags every log line emitted during a test case with the
// case it belongs to.
type testContext struct {
	idx  int
	name string
}

func (c *testContext) AddLogContext(e *log.EntryZ) {
	e.Int("test", c.idx).String("case", c.name)
}
