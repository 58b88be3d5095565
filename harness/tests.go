package harness

import (
	"math/rand/v2"
)

// Params control how hard each conformance check hammers the device
// and where register addresses and values come from.
type Params struct {
	WriteReadRegs int // test 1 iterations
	WriteReadReg0 int // test 2 iterations
	Isolation     int // test 3 iterations
	InvalidWrite  int // test 4 iterations
	InvalidRead   int // test 5 iterations

	// Deterministic cycles addresses and values instead of drawing
	// them from the seeded source, for fully reproducible runs.
	Deterministic bool
	Seed          uint64
}

func DefaultParams() Params {
	return Params{
		WriteReadRegs: 100,
		WriteReadReg0: 10,
		Isolation:     500,
		InvalidWrite:  500,
		InvalidRead:   500,
	}
}

// source yields register addresses and values for test iterations,
// either from a seeded PCG or cycling on the iteration counter. A
// deterministic run needs no RNG at all.
type source struct {
	rng *rand.Rand // nil in deterministic mode
}

func newSource(p Params) source {
	if p.Deterministic {
		return source{}
	}
	return source{rng: rand.New(rand.NewPCG(p.Seed, p.Seed))}
}

// reg14 picks a full-byte register (1-4).
func (s source) reg14(i int) uint8 {
	if s.rng == nil {
		return uint8(i%4) + 1
	}
	return uint8(s.rng.IntN(4)) + 1
}

// reg04 picks any register of the bank.
func (s source) reg04(i int) uint8 {
	if s.rng == nil {
		return uint8(i % NumRegisters)
	}
	return uint8(s.rng.IntN(NumRegisters))
}

// invalid picks an address outside the bank (5-254).
func (s source) invalid(i int) uint8 {
	if s.rng == nil {
		return uint8(i%250) + NumRegisters
	}
	return uint8(s.rng.IntN(250)) + NumRegisters
}

func (s source) value(i int) uint8 {
	if s.rng == nil {
		return uint8(i)
	}
	return uint8(s.rng.UintN(256))
}

// A Test is one conformance check. Run returns nil on pass; on failure
// it returns a *Failure describing what went wrong.
type Test struct {
	Name string
	Run  func() error
}

// checklist pairs each check with the Params field carrying its
// iteration count. Order matters: later checks assume the invariants
// established by earlier ones still hold, which is also why the runner
// is fail-fast.
var checklist = []struct {
	name  string
	count func(Params) int
	make  func(*RegisterAccess, source, int) func() error
}{
	{"write/read registers 1-4", func(p Params) int { return p.WriteReadRegs }, testWriteReadRegs},
	{"write/read register 0", func(p Params) int { return p.WriteReadReg0 }, testWriteReadReg0},
	{"write reg/read all", func(p Params) int { return p.Isolation }, testIsolation},
	{"write invalid reg/read all", func(p Params) int { return p.InvalidWrite }, testInvalidWrite},
	{"write invalid reg/read zero", func(p Params) int { return p.InvalidRead }, testInvalidReadZero},
}

// Plan returns the checklist names and iteration counts for p, in
// execution order, without needing a device.
func Plan(p Params) (names []string, counts []int) {
	for _, tc := range checklist {
		names = append(names, tc.name)
		counts = append(counts, tc.count(p))
	}
	return names, counts
}

// Tests builds the ordered conformance checklist over ra.
func Tests(ra *RegisterAccess, p Params) []Test {
	src := newSource(p)
	tests := make([]Test, len(checklist))
	for i, tc := range checklist {
		tests[i] = Test{Name: tc.name, Run: tc.make(ra, src, tc.count(p))}
	}
	return tests
}

// Test 1: write then read back registers 1-4; the value must survive
// the round trip unchanged.
func testWriteReadRegs(ra *RegisterAccess, src source, n int) func() error {
	return func() error {
		for i := 0; i < n; i++ {
			reg, val := src.reg14(i), src.value(i)
			if err := ra.WriteRegister(reg, val); err != nil {
				return &Failure{Kind: KindTransport, Register: reg, Err: err}
			}
			got, err := ra.ReadRegister(reg)
			if err != nil {
				return &Failure{Kind: KindTransport, Register: reg, Err: err}
			}
			if got != val {
				return &Failure{Kind: KindMismatch, Register: reg, Wrote: val, Read: got}
			}
		}
		return nil
	}
}

// Test 2: like test 1 on register 0, but only the low nibble is
// writable so only nibbles are compared.
func testWriteReadReg0(ra *RegisterAccess, src source, n int) func() error {
	return func() error {
		for i := 0; i < n; i++ {
			val := src.value(i)
			if err := ra.WriteRegister(0, val); err != nil {
				return &Failure{Kind: KindTransport, Register: 0, Err: err}
			}
			got, err := ra.ReadRegister(0)
			if err != nil {
				return &Failure{Kind: KindTransport, Register: 0, Err: err}
			}
			if got&Reg0Mask != val&Reg0Mask {
				return &Failure{Kind: KindMismatch, Register: 0, Wrote: val & Reg0Mask, Read: got & Reg0Mask}
			}
		}
		return nil
	}
}

// Test 3: a write to one register must not perturb any other. Every
// iteration writes one register then compares the complete bank
// against the shadow.
func testIsolation(ra *RegisterAccess, src source, n int) func() error {
	return func() error {
		var bank Bank
		for reg := uint8(0); reg < NumRegisters; reg++ {
			if err := ra.WriteRegister(reg, 0); err != nil {
				return &Failure{Kind: KindTransport, Register: reg, Err: err}
			}
		}

		for i := 0; i < n; i++ {
			reg, val := src.reg04(i), src.value(i)
			bank[reg] = val
			if err := ra.WriteRegister(reg, val); err != nil {
				return &Failure{Kind: KindTransport, Register: reg, Err: err}
			}
			if err := bank.Compare(ra); err != nil {
				return err
			}
		}
		return nil
	}
}

// Test 4: writes to invalid registers (5-254) must leave the real bank
// untouched.
func testInvalidWrite(ra *RegisterAccess, src source, n int) func() error {
	return func() error {
		var bank Bank
		for reg := uint8(0); reg < NumRegisters; reg++ {
			bank[reg] = src.value(int(reg))
			if err := ra.WriteRegister(reg, bank[reg]); err != nil {
				return &Failure{Kind: KindTransport, Register: reg, Err: err}
			}
		}

		for i := 0; i < n; i++ {
			addr, val := src.invalid(i), src.value(i)
			if err := ra.WriteRegister(addr, val); err != nil {
				return &Failure{Kind: KindTransport, Register: addr, Err: err}
			}
			if err := bank.Compare(ra); err != nil {
				return err
			}
		}
		return nil
	}
}

// Test 5: after a write to an invalid register, a raw bus read (no
// register select) must return exactly zero. This is a device-level
// invariant about its default read value, distinct from a register
// mismatch.
func testInvalidReadZero(ra *RegisterAccess, src source, n int) func() error {
	return func() error {
		for i := 0; i < n; i++ {
			addr, val := src.invalid(i), src.value(i)
			if err := ra.WriteRegister(addr, val); err != nil {
				return &Failure{Kind: KindTransport, Register: addr, Err: err}
			}
			got, err := ra.RawRead()
			if err != nil {
				return &Failure{Kind: KindTransport, Register: addr, Err: err}
			}
			if got != 0 {
				return &Failure{Kind: KindMismatch, Register: addr, Wrote: 0, Read: got}
			}
		}
		return nil
	}
}
