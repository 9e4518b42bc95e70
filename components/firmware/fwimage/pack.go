package fwimage

import (
	"fmt"
	"hash/crc32"
)

// PackParams describes the application to be packed.
type PackParams struct {
	// Name is the application name, see Header.
	Name string

	// CreatedAt is the timestamp of the application binary creation.
	CreatedAt uint32

	// WrittenAt is the timestamp of the image write to the EEPROM.
	WrittenAt uint32
}

// Pack builds a flashable image from the application binary.
//
// The payload checksum and size are computed from the provided binary.
func Pack(payload []byte, params PackParams) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("fwimage: failed to pack: payload too large:"+
			" size=%v limit=%v", len(payload), MaxPayloadSize)
	}

	header := Header{
		Name:        params.Name,
		CreatedAt:   params.CreatedAt,
		WrittenAt:   params.WrittenAt,
		Checksum:    crc32.ChecksumIEEE(payload),
		PayloadSize: uint16(len(payload)),
	}

	return append(EncodeHeader(header), payload...), nil
}

// Unpack splits a flashable image into the header and the application binary.
//
// The payload size and checksum are verified against the header.
func Unpack(image []byte) (Header, []byte, error) {
	header, err := DecodeHeader(image)
	if err != nil {
		return Header{}, nil, err
	}

	payload := image[HeaderSize:]

	if len(payload) != int(header.PayloadSize) {
		return Header{}, nil, fmt.Errorf("fwimage: failed to unpack: size mismatch:"+
			" got=%v want=%v", len(payload), header.PayloadSize)
	}

	if checksum := crc32.ChecksumIEEE(payload); checksum != header.Checksum {
		return Header{}, nil, fmt.Errorf("fwimage: failed to unpack: checksum mismatch:"+
			" got=%08x want=%08x", checksum, header.Checksum)
	}

	return header, payload, nil
}
