package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/m4k3r-org/miniboot/components/storage/steeprom"
)

var (
	timestampOffset uint32
	timestampSize   uint32
)

var timestampCmd = &cobra.Command{
	Use:   "timestamp",
	Short: "Operate on the flash timestamp inside an internal EEPROM image",
}

var timestampGetCmd = &cobra.Command{
	Use:   "get FILE",
	Short: "Read the flash timestamp from an internal EEPROM image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, err := steeprom.NewImageDriver(args[0], timestampSize)
		if err != nil {
			return err
		}

		store := steeprom.NewTimestampStore(driver, timestampOffset)
		cmd.Println(store.Read())

		return nil
	},
}

var timestampSetCmd = &cobra.Command{
	Use:   "set FILE VALUE",
	Short: "Write the flash timestamp to an internal EEPROM image",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		value, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return err
		}

		driver, err := steeprom.NewImageDriver(args[0], timestampSize)
		if err != nil {
			return err
		}

		store := steeprom.NewTimestampStore(driver, timestampOffset)
		store.Write(uint32(value))

		return driver.Save()
	},
}

func init() {
	timestampCmd.PersistentFlags().Uint32Var(&timestampOffset, "offset",
		steeprom.ConfigStart, "offset of the configuration region")
	// 1 KiB is the internal EEPROM size of the ATmega328 family.
	timestampCmd.PersistentFlags().Uint32Var(&timestampSize, "size", 1024,
		"internal EEPROM size, in bytes")

	timestampCmd.AddCommand(timestampGetCmd)
	timestampCmd.AddCommand(timestampSetCmd)
}
