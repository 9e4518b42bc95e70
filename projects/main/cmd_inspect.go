package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/m4k3r-org/miniboot/components/boot"
	"github.com/m4k3r-org/miniboot/components/firmware/fwimage"
	"github.com/m4k3r-org/miniboot/components/storage/steeprom"
)

var (
	inspectEepromPath string
	inspectOffset     uint32
	inspectSize       uint32
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the header of a flashable EEPROM image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		header, _, err := fwimage.Unpack(image)
		if err != nil {
			return err
		}

		printHeader(cmd, header)

		if inspectEepromPath != "" {
			driver, err := steeprom.NewImageDriver(inspectEepromPath, inspectSize)
			if err != nil {
				return err
			}

			store := steeprom.NewTimestampStore(driver, inspectOffset)
			checker := boot.NewUpdateChecker(store)

			cmd.Printf("Needs flashing:    %v\n", checker.NeedUpdate(header))
		}

		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectEepromPath, "eeprom", "",
		"internal EEPROM image path, empty - skip the update check")
	inspectCmd.Flags().Uint32Var(&inspectOffset, "offset", steeprom.ConfigStart,
		"offset of the configuration region")
	// 1 KiB is the internal EEPROM size of the ATmega328 family.
	inspectCmd.Flags().Uint32Var(&inspectSize, "size", 1024,
		"internal EEPROM size, in bytes")
}
