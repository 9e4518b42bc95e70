package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/m4k3r-org/miniboot/components/core"
)

var rootCmd = &cobra.Command{
	Use:          "miniboot",
	Short:        "Host-side tooling for the miniboot bootloader",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if path := os.Getenv("MINIBOOT_LOG_PATH"); path != "" {
			return core.SetLogFile(path)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(timestampCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(emulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
