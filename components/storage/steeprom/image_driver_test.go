package steeprom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageDriverMissingFileStartsErased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internal.eeprom")

	driver, err := NewImageDriver(path, 16)
	require.Nil(t, err)

	for offset := uint32(0); offset < driver.Size(); offset++ {
		require.Equal(t, ErasedByte, driver.ReadByte(offset))
	}
}

func TestImageDriverSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internal.eeprom")

	driver, err := NewImageDriver(path, 16)
	require.Nil(t, err)

	store := NewTimestampStore(driver, ConfigStart)
	store.Write(0x01020304)
	require.Nil(t, driver.Save())

	loaded, err := NewImageDriver(path, 16)
	require.Nil(t, err)

	restored := NewTimestampStore(loaded, ConfigStart)
	require.Equal(t, uint32(0x01020304), restored.Read())
}

func TestImageDriverPadsSmallerImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internal.eeprom")
	require.Nil(t, os.WriteFile(path, []byte{0x01, 0x02}, 0644))

	driver, err := NewImageDriver(path, 8)
	require.Nil(t, err)

	require.Equal(t, byte(0x01), driver.ReadByte(0))
	require.Equal(t, byte(0x02), driver.ReadByte(1))
	require.Equal(t, ErasedByte, driver.ReadByte(2))
	require.Equal(t, ErasedByte, driver.ReadByte(7))
}

func TestImageDriverRejectsLargerImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internal.eeprom")
	require.Nil(t, os.WriteFile(path, make([]byte, 32), 0644))

	_, err := NewImageDriver(path, 16)
	require.NotNil(t, err)
}
