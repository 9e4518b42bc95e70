package boot

import "github.com/m4k3r-org/miniboot/components/firmware/fwimage"

// TimestampReader to read the timestamp of the latest flashed application.
type TimestampReader interface {
	// Read restores the persisted timestamp.
	Read() uint32
}

// UpdateChecker decides whether an application image should be flashed.
type UpdateChecker struct {
	reader TimestampReader
}

// NewUpdateChecker is an initialization of UpdateChecker.
//
// Parameters:
//   - reader to read the timestamp of the latest flashed application.
func NewUpdateChecker(reader TimestampReader) *UpdateChecker {
	return &UpdateChecker{reader: reader}
}

// NeedUpdate returns true if the image is newer than the flashed application.
//
// An image with the same write timestamp is not an update, so re-checking
// the same EEPROM content never triggers a reflash.
func (c *UpdateChecker) NeedUpdate(header fwimage.Header) bool {
	return header.WrittenAt > c.reader.Read()
}
