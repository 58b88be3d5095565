package harness

// Bank is the in-memory shadow of the device register file. It is
// owned by the test case that needs cross-register invariants, rebuilt
// fresh for each of them and never shared.
type Bank [NumRegisters]uint8

// Compare reads back the whole register file and checks it against the
// shadow. Register 0 is compared on its low nibble only. It stops at
// the first divergence or transport error.
func (b *Bank) Compare(ra *RegisterAccess) error {
	for reg := uint8(0); reg < NumRegisters; reg++ {
		val, err := ra.ReadRegister(reg)
		if err != nil {
			return &Failure{Kind: KindTransport, Register: reg, Err: err}
		}
		want := b[reg]
		if reg == 0 {
			val &= Reg0Mask
			want &= Reg0Mask
		}
		if val != want {
			return &Failure{Kind: KindIsolation, Register: reg, Wrote: want, Read: val}
		}
	}
	return nil
}
