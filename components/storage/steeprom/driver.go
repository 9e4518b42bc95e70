package steeprom

// Driver provides byte-level access to a non-volatile configuration memory.
//
// Remarks:
//   - The primitives are infallible at this abstraction level: an offset
//     outside of the memory region is a programming error.
//   - Implementation isn't required to be thread-safe.
type Driver interface {
	// ReadByte reads a single byte at the provided offset.
	ReadByte(offset uint32) byte

	// WriteByte writes a single byte at the provided offset.
	WriteByte(offset uint32, value byte)

	// WaitIdle blocks until the memory finishes committing previous writes.
	WaitIdle()
}
