package steeprom

import (
	"fmt"
	"os"
)

// ImageDriver provides byte-level access to an EEPROM image file.
//
// The image is loaded into memory on initialization, byte operations never
// touch the disk. Save persists the current state back to the file.
type ImageDriver struct {
	path  string
	cells []byte
}

// NewImageDriver is an initialization of ImageDriver.
//
// Parameters:
//   - path - image file path. If the file doesn't exist, the image starts
//     in the erased state.
//   - size - memory region size, in bytes. An existing image smaller than
//     size is padded with erased cells; a larger one is rejected.
func NewImageDriver(path string, size uint32) (*ImageDriver, error) {
	cells := make([]byte, size)
	for n := range cells {
		cells[n] = ErasedByte
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		if len(buf) > len(cells) {
			return nil, fmt.Errorf(
				"image-driver: failed to load image: path=%s size=%v limit=%v",
				path, len(buf), len(cells))
		}

		copy(cells, buf)
	}

	return &ImageDriver{
		path:  path,
		cells: cells,
	}, nil
}

// ReadByte reads a single byte at the provided offset.
func (d *ImageDriver) ReadByte(offset uint32) byte {
	d.checkOffset(offset)

	return d.cells[offset]
}

// WriteByte writes a single byte at the provided offset.
func (d *ImageDriver) WriteByte(offset uint32, value byte) {
	d.checkOffset(offset)

	d.cells[offset] = value
}

// WaitIdle is non-operational.
//
// The in-memory image is always consistent, persistence happens in Save.
func (*ImageDriver) WaitIdle() {
}

// Save persists the image to the file.
func (d *ImageDriver) Save() error {
	if err := os.WriteFile(d.path, d.cells, 0644); err != nil {
		return fmt.Errorf("image-driver: failed to save image: path=%s err=%w",
			d.path, err)
	}

	return nil
}

// Size returns the memory region size, in bytes.
func (d *ImageDriver) Size() uint32 {
	return uint32(len(d.cells))
}

func (d *ImageDriver) checkOffset(offset uint32) {
	if offset >= uint32(len(d.cells)) {
		panic(fmt.Sprintf("steeprom: offset out of range: offset=%v size=%v",
			offset, len(d.cells)))
	}
}
