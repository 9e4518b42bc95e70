package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4k3r-org/miniboot/components/firmware/fwimage"
	"github.com/m4k3r-org/miniboot/components/storage/steeprom"
)

func writeEepromTimestamp(t *testing.T, path string, value uint32) {
	driver, err := steeprom.NewImageDriver(path, 1024)
	require.Nil(t, err)

	store := steeprom.NewTimestampStore(driver, steeprom.ConfigStart)
	store.Write(value)

	require.Nil(t, driver.Save())
}

func TestInspectUpdateCheck(t *testing.T) {
	dir := t.TempDir()

	imagePath := filepath.Join(dir, "blink.eeprom")
	image, err := fwimage.Pack([]byte{0xAA, 0xBB}, fwimage.PackParams{
		Name:      "blink",
		CreatedAt: 100,
		WrittenAt: 200,
	})
	require.Nil(t, err)
	require.Nil(t, os.WriteFile(imagePath, image, 0644))

	eepromPath := filepath.Join(dir, "internal.eeprom")
	writeEepromTimestamp(t, eepromPath, 100)

	require.Nil(t, inspectCmd.Flags().Set("eeprom", eepromPath))

	buf := &bytes.Buffer{}
	inspectCmd.SetOut(buf)

	require.Nil(t, inspectCmd.RunE(inspectCmd, []string{imagePath}))
	require.Contains(t, buf.String(), "Needs flashing:    true")

	writeEepromTimestamp(t, eepromPath, 300)

	buf.Reset()
	require.Nil(t, inspectCmd.RunE(inspectCmd, []string{imagePath}))
	require.Contains(t, buf.String(), "Needs flashing:    false")
}
