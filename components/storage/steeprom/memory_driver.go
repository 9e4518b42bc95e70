package steeprom

import "fmt"

// ErasedByte is the value of a memory cell that was never written.
const ErasedByte byte = 0xFF

// MemoryDriver is an in-memory emulation of an EEPROM region.
type MemoryDriver struct {
	cells   []byte
	pending int
	commits int
}

// NewMemoryDriver is an initialization of MemoryDriver.
//
// Parameters:
//   - size - memory region size, in bytes. All cells are in the erased state.
func NewMemoryDriver(size uint32) *MemoryDriver {
	cells := make([]byte, size)
	for n := range cells {
		cells[n] = ErasedByte
	}

	return &MemoryDriver{cells: cells}
}

// ReadByte reads a single byte at the provided offset.
func (d *MemoryDriver) ReadByte(offset uint32) byte {
	d.checkOffset(offset)

	return d.cells[offset]
}

// WriteByte writes a single byte at the provided offset.
//
// The write is counted as pending until WaitIdle is called.
func (d *MemoryDriver) WriteByte(offset uint32, value byte) {
	d.checkOffset(offset)

	d.cells[offset] = value
	d.pending++
}

// WaitIdle commits all pending writes.
func (d *MemoryDriver) WaitIdle() {
	if d.pending > 0 {
		d.pending = 0
		d.commits++
	}
}

// Size returns the memory region size, in bytes.
func (d *MemoryDriver) Size() uint32 {
	return uint32(len(d.cells))
}

func (d *MemoryDriver) checkOffset(offset uint32) {
	if offset >= uint32(len(d.cells)) {
		panic(fmt.Sprintf("steeprom: offset out of range: offset=%v size=%v",
			offset, len(d.cells)))
	}
}
