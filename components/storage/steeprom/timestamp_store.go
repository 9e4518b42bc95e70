package steeprom

import "encoding/binary"

const (
	// ConfigStart is the default base offset of the configuration region
	// in the internal EEPROM.
	ConfigStart uint32 = 0

	// TimestampSize is the persisted timestamp size, in bytes.
	TimestampSize = 4
)

// TimestampStore persists the timestamp of the latest flashed application
// at a fixed offset in the configuration memory.
//
// The timestamp occupies TimestampSize bytes starting at the base offset,
// most significant byte first.
//
// Remarks:
//   - It isn't safe to use the store from multiple goroutines without
//     external synchronization.
type TimestampStore struct {
	driver Driver
	base   uint32
}

// NewTimestampStore is an initialization of TimestampStore.
//
// Parameters:
//   - driver - configuration memory driver.
//   - base - offset of the first timestamp byte, see ConfigStart.
func NewTimestampStore(driver Driver, base uint32) *TimestampStore {
	return &TimestampStore{
		driver: driver,
		base:   base,
	}
}

// Write persists the timestamp and waits until the memory becomes idle.
func (s *TimestampStore) Write(value uint32) {
	var buf [TimestampSize]byte
	binary.BigEndian.PutUint32(buf[:], value)

	for n, b := range buf {
		s.driver.WriteByte(s.base+uint32(n), b)
	}

	s.driver.WaitIdle()
}

// Read restores the persisted timestamp.
//
// Remarks:
//   - The memory idle wait is kept after the read, as the original
//     bootloader does it for every EEPROM access.
func (s *TimestampStore) Read() uint32 {
	var buf [TimestampSize]byte

	for n := range buf {
		buf[n] = s.driver.ReadByte(s.base + uint32(n))
	}

	value := binary.BigEndian.Uint32(buf[:])

	s.driver.WaitIdle()

	return value
}
