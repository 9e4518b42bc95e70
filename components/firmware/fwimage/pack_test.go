package fwimage

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderEncodeDecode(t *testing.T) {
	header := Header{
		Name:        "blink",
		CreatedAt:   1736500000,
		WrittenAt:   1736600000,
		Checksum:    0xDEADBEEF,
		PayloadSize: 512,
	}

	buf := EncodeHeader(header)
	require.Equal(t, HeaderSize, len(buf))
	require.Equal(t, Preamble, string(buf[:len(Preamble)]))
	require.Equal(t, "blink     ", string(buf[10:20]))

	decoded, err := DecodeHeader(buf)
	require.Nil(t, err)
	require.Equal(t, header, decoded)
}

func TestHeaderEncodeTruncatesName(t *testing.T) {
	header := Header{
		Name: "very-long-application-name",
	}

	decoded, err := DecodeHeader(EncodeHeader(header))
	require.Nil(t, err)
	require.Equal(t, "very-long-", decoded.Name)
}

func TestHeaderDecodeTooShort(t *testing.T) {
	_, err := DecodeHeader(make([]byte, HeaderSize-1))
	require.NotNil(t, err)
}

func TestHeaderDecodeBadPreamble(t *testing.T) {
	buf := EncodeHeader(Header{Name: "blink"})
	buf[0] = 'X'

	_, err := DecodeHeader(buf)
	require.NotNil(t, err)
}

func TestHeaderFieldByteOrder(t *testing.T) {
	buf := EncodeHeader(Header{WrittenAt: 0x01020304})

	require.Equal(t, byte(0x01), buf[24])
	require.Equal(t, byte(0x02), buf[25])
	require.Equal(t, byte(0x03), buf[26])
	require.Equal(t, byte(0x04), buf[27])
}

func TestPackUnpackRoundTrip(t *testing.T) {
	payload := []byte{0x0C, 0x94, 0x5C, 0x00, 0x0C, 0x94, 0x6E, 0x00}

	image, err := Pack(payload, PackParams{
		Name:      "blink",
		CreatedAt: 100,
		WrittenAt: 200,
	})
	require.Nil(t, err)
	require.Equal(t, HeaderSize+len(payload), len(image))

	header, unpacked, err := Unpack(image)
	require.Nil(t, err)
	require.Equal(t, payload, unpacked)
	require.Equal(t, "blink", header.Name)
	require.Equal(t, uint32(100), header.CreatedAt)
	require.Equal(t, uint32(200), header.WrittenAt)
	require.Equal(t, crc32.ChecksumIEEE(payload), header.Checksum)
	require.Equal(t, uint16(len(payload)), header.PayloadSize)
}

func TestPackPayloadTooLarge(t *testing.T) {
	_, err := Pack(make([]byte, MaxPayloadSize+1), PackParams{Name: "blink"})
	require.NotNil(t, err)
}

func TestUnpackSizeMismatch(t *testing.T) {
	image, err := Pack([]byte{1, 2, 3}, PackParams{Name: "blink"})
	require.Nil(t, err)

	_, _, err = Unpack(image[:len(image)-1])
	require.NotNil(t, err)
}

func TestUnpackChecksumMismatch(t *testing.T) {
	image, err := Pack([]byte{1, 2, 3}, PackParams{Name: "blink"})
	require.Nil(t, err)

	image[len(image)-1] ^= 0xFF

	_, _, err = Unpack(image)
	require.NotNil(t, err)
}
