// Package bus abstracts the two-wire serial link to the device under
// test. The harness owns the bus exclusively: there is no arbitration
// with other controllers and no multi-device addressing.
package bus

// Transport moves raw bytes to and from the device at its fixed slave
// address. Each call is a single bus transaction and blocks until the
// driver completes it or gives up; there are no retries at this layer.
type Transport interface {
	// Write sends len(p) bytes in one transaction.
	Write(p []byte) error

	// Read fills p from one transaction.
	Read(p []byte) error
}
