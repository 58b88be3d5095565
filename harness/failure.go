package harness

import "fmt"

// Kind classifies why a test case failed.
type Kind int

//go:generate go tool stringer -type=Kind -trimprefix=Kind

const (
	// KindTransport: a bus write or read reported failure.
	KindTransport Kind = iota
	// KindMismatch: a read-back value disagrees with what was written
	// (or a raw read after an invalid-register write was not zero).
	KindMismatch
	// KindIsolation: a write observably changed an unrelated register.
	KindIsolation
)

// Failure is the error a test case returns. None of these are ever
// retried: once the device state diverges from the model, later
// iterations would assert against garbage.
type Failure struct {
	Kind     Kind
	Register uint8
	Wrote    uint8 // expected value (already masked where relevant)
	Read     uint8 // observed value
	Err      error // underlying transport error, KindTransport only
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindTransport:
		return fmt.Sprintf("transport failure on register %d: %v", f.Register, f.Err)
	case KindIsolation:
		return fmt.Sprintf("register %d changed to %02X, expected %02X", f.Register, f.Read, f.Wrote)
	default:
		return fmt.Sprintf("wrote %02X to register %d, but read %02X", f.Wrote, f.Register, f.Read)
	}
}

func (f *Failure) Unwrap() error { return f.Err }
