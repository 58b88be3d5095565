package harness

import (
	"errors"
	"testing"
)

func TestBankCompareMatches(t *testing.T) {
	dev := &simDevice{}
	ra := NewRegisterAccess(dev)

	bank := Bank{0x03, 0x11, 0x22, 0x33, 0x44}
	for reg := uint8(0); reg < NumRegisters; reg++ {
		if err := ra.WriteRegister(reg, bank[reg]); err != nil {
			t.Fatal(err)
		}
	}

	if err := bank.Compare(ra); err != nil {
		t.Fatalf("bank compare: %v", err)
	}
}

func TestBankCompareMasksRegister0(t *testing.T) {
	dev := &simDevice{}
	ra := NewRegisterAccess(dev)

	// The device stores only the low nibble; the shadow keeps the full
	// written byte. The high nibbles must not be compared.
	if err := ra.WriteRegister(0, 0xF3); err != nil {
		t.Fatal(err)
	}
	bank := Bank{0xF3, 0, 0, 0, 0}
	if err := bank.Compare(ra); err != nil {
		t.Fatalf("masked compare: %v", err)
	}

	// But a low nibble divergence is a failure.
	bank[0] = 0xF4
	var f *Failure
	if err := bank.Compare(ra); !errors.As(err, &f) {
		t.Fatalf("expected *Failure, got %v", err)
	} else if f.Register != 0 || f.Kind != KindIsolation {
		t.Errorf("failure = %+v, want isolation on register 0", f)
	}
}

func TestBankCompareReportsRegister(t *testing.T) {
	dev := &simDevice{}
	ra := NewRegisterAccess(dev)

	var bank Bank
	bank[3] = 0x99

	var f *Failure
	if err := bank.Compare(ra); !errors.As(err, &f) {
		t.Fatalf("expected *Failure, got %v", err)
	}
	if f.Register != 3 || f.Wrote != 0x99 || f.Read != 0x00 {
		t.Errorf("failure = %+v, want register 3 wrote 99 read 00", f)
	}
}

func TestBankCompareTransportError(t *testing.T) {
	dev := &failingTransport{fuel: 3} // dies during the second register read
	ra := NewRegisterAccess(dev)

	var bank Bank
	var f *Failure
	if err := bank.Compare(ra); !errors.As(err, &f) {
		t.Fatalf("expected *Failure, got %v", err)
	} else if f.Kind != KindTransport {
		t.Errorf("kind = %v, want Transport", f.Kind)
	} else if !errors.Is(f, errBusStuck) {
		t.Error("transport failure does not wrap the bus error")
	}
}
