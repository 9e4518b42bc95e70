package fwimage

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Image header layout, all multi-byte fields are big-endian:
//
//	0-9   preamble "ABminiboot"
//	10-19 application name, padded with spaces
//	20-23 timestamp of the application creation
//	24-27 timestamp of the EEPROM write
//	28-31 CRC32 of the payload
//	32-33 payload size
const (
	// Preamble marks the beginning of a flashable image.
	Preamble = "ABminiboot"

	// NameSize is the fixed application name field size, in bytes.
	NameSize = 10

	// HeaderSize is the total header size, in bytes.
	HeaderSize = 34

	// MaxPayloadSize is the maximum payload size the header can describe.
	MaxPayloadSize = 0xFFFF

	nameOffset    = 10
	createdOffset = 20
	writtenOffset = 24
	crcOffset     = 28
	sizeOffset    = 32
)

// Header describes a single application image in the external EEPROM.
type Header struct {
	// Name is the application name, at most NameSize characters.
	Name string

	// CreatedAt is the timestamp of the application binary creation.
	CreatedAt uint32

	// WrittenAt is the timestamp of the image write to the EEPROM.
	WrittenAt uint32

	// Checksum is the CRC32 of the payload.
	Checksum uint32

	// PayloadSize is the payload size, in bytes.
	PayloadSize uint16
}

// EncodeHeader serializes the header.
//
// Remarks:
//   - The application name is space-padded and truncated to NameSize bytes.
func EncodeHeader(header Header) []byte {
	buf := make([]byte, HeaderSize)

	copy(buf, []byte(Preamble))

	name := header.Name
	if len(name) > NameSize {
		name = name[:NameSize]
	}
	name += strings.Repeat(" ", NameSize-len(name))
	copy(buf[nameOffset:], []byte(name))

	binary.BigEndian.PutUint32(buf[createdOffset:], header.CreatedAt)
	binary.BigEndian.PutUint32(buf[writtenOffset:], header.WrittenAt)
	binary.BigEndian.PutUint32(buf[crcOffset:], header.Checksum)
	binary.BigEndian.PutUint16(buf[sizeOffset:], header.PayloadSize)

	return buf
}

// DecodeHeader deserializes the header.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf(
			"fwimage: failed to decode header: size=%v want=%v", len(buf), HeaderSize)
	}

	if string(buf[:len(Preamble)]) != Preamble {
		return Header{}, fmt.Errorf("fwimage: failed to decode header: bad preamble")
	}

	return Header{
		Name:        strings.TrimRight(string(buf[nameOffset:nameOffset+NameSize]), " "),
		CreatedAt:   binary.BigEndian.Uint32(buf[createdOffset:]),
		WrittenAt:   binary.BigEndian.Uint32(buf[writtenOffset:]),
		Checksum:    binary.BigEndian.Uint32(buf[crcOffset:]),
		PayloadSize: binary.BigEndian.Uint16(buf[sizeOffset:]),
	}, nil
}
