package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/m4k3r-org/miniboot/components/firmware/fwimage"
)

var (
	packFile      string
	packOutput    string
	packAppName   string
	packCreatedAt uint32
	packWrittenAt uint32
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Build a flashable EEPROM image from an application binary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		payload, err := os.ReadFile(packFile)
		if err != nil {
			return err
		}

		createdAt := packCreatedAt
		if !cmd.Flags().Changed("created") {
			info, err := os.Stat(packFile)
			if err != nil {
				return err
			}

			createdAt = uint32(info.ModTime().Unix())
		}

		writtenAt := packWrittenAt
		if !cmd.Flags().Changed("written") {
			writtenAt = uint32(time.Now().Unix())
		}

		image, err := fwimage.Pack(payload, fwimage.PackParams{
			Name:      packAppName,
			CreatedAt: createdAt,
			WrittenAt: writtenAt,
		})
		if err != nil {
			return err
		}

		if err := os.WriteFile(packOutput, image, 0644); err != nil {
			return err
		}

		header, _, err := fwimage.Unpack(image)
		if err != nil {
			return err
		}

		printHeader(cmd, header)
		cmd.Printf("%s -> %s\n", packFile, packOutput)

		return nil
	},
}

func printHeader(cmd *cobra.Command, header fwimage.Header) {
	cmd.Printf("Application name:  %s\n", header.Name)
	cmd.Printf("Created timestamp: %v\n", header.CreatedAt)
	cmd.Printf("Written timestamp: %v\n", header.WrittenAt)
	cmd.Printf("CRC32:             %08x\n", header.Checksum)
	cmd.Printf("Payload size:      %v\n", header.PayloadSize)
}

func init() {
	packCmd.Flags().StringVarP(&packFile, "file", "f", "",
		"path to the application binary")
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "output.eeprom",
		"output image file path")
	packCmd.Flags().StringVarP(&packAppName, "appname", "a", "APPNAME",
		fmt.Sprintf("application name, at most %v characters", fwimage.NameSize))
	packCmd.Flags().Uint32Var(&packCreatedAt, "created", 0,
		"application creation timestamp, defaults to the binary modification time")
	packCmd.Flags().Uint32Var(&packWrittenAt, "written", 0,
		"image write timestamp, defaults to the current time")

	_ = packCmd.MarkFlagRequired("file")
}
