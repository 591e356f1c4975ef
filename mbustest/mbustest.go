// Package mbustest holds small fixture helpers for the module's package
// tests (currently the userdata pipeline test): a fluent byte builder
// for assembling telegram fixtures and a table-driven golden-vector
// runner, mirroring the shape of the hex fixtures scattered through the
// pack's own test suites.
package mbustest

import "testing"

// Bytes is a fluent builder for telegram fixtures. Each method returns
// the receiver so calls chain; Build materialises the accumulated slice.
type Bytes struct {
	buf []byte
}

// NewBytes starts an empty builder.
func NewBytes() *Bytes {
	return &Bytes{}
}

// Push appends raw bytes.
func (b *Bytes) Push(bs ...byte) *Bytes {
	b.buf = append(b.buf, bs...)
	return b
}

// BCD appends n bytes of packed BCD encoding the decimal value v,
// least-significant byte first, matching the wire order DecodeWireless and
// the TPL header decoders expect.
func (b *Bytes) BCD(v uint32, n int) *Bytes {
	for i := 0; i < n; i++ {
		digit := v % 100
		v /= 100
		b.buf = append(b.buf, byte((digit/10)<<4|(digit%10)))
	}
	return b
}

// LE16 appends a little-endian 16-bit value.
func (b *Bytes) LE16(v uint16) *Bytes {
	return b.Push(byte(v), byte(v>>8))
}

// Build returns the accumulated byte slice.
func (b *Bytes) Build() []byte {
	return b.buf
}

// GoldenCase is one entry of a golden-vector table: a literal input and
// the assertion to run against its decode result.
type GoldenCase struct {
	Name  string
	Input []byte
	Check func(t *testing.T, input []byte)
}

// Run executes each case as its own subtest.
func Run(t *testing.T, cases []GoldenCase) {
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			c.Check(t, c.Input)
		})
	}
}
