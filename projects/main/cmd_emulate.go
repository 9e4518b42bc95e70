package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/grandcat/zeroconf"
	"github.com/spf13/cobra"

	"github.com/m4k3r-org/miniboot/components/core"
	"github.com/m4k3r-org/miniboot/components/http/htcore"
	"github.com/m4k3r-org/miniboot/components/storage/steeprom"
	"github.com/m4k3r-org/miniboot/components/system/sysmdns"
)

var (
	emulateHost         string
	emulatePort         int
	emulateImagePath    string
	emulateSize         uint32
	emulateOffset       uint32
	emulateDeviceID     string
	emulateApp          string
	emulateDesc         string
	emulateURI          string
	emulateMdnsDisabled bool
)

var emulateCmd = &cobra.Command{
	Use:   "emulate",
	Short: "Run a device emulator with an EEPROM-backed timestamp store",
	RunE: func(_ *cobra.Command, _ []string) error {
		appContext, cancelFunc := signal.NotifyContext(context.Background(),
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGQUIT)
		defer cancelFunc()

		fanoutCloser := &core.FanoutCloser{}
		defer fanoutCloser.Close()

		store, err := newEmulatedStore()
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle("/api/v1/firmware",
			htcore.NewFirmwareReportHandler(emulateDeviceID, emulateApp, store))
		mux.Handle("/api/v1/timestamp", htcore.NewTimestampHandler(store))

		server, err := htcore.NewServer(mux, htcore.ServerParams{
			Host: emulateHost,
			Port: emulatePort,
		})
		if err != nil {
			return err
		}
		fanoutCloser.Add("http-server", server)

		server.Start()

		if !emulateMdnsDisabled {
			uri := emulateURI
			if uri == "" {
				hostname, err := os.Hostname()
				if err != nil {
					return err
				}

				uri = fmt.Sprintf("http://%s.local:%v/api/v1", hostname, server.Port())
			}

			mdnsServer, err := zeroconf.Register(
				emulateDeviceID,
				sysmdns.MinibootServiceName,
				"local.",
				server.Port(),
				[]string{
					"miniboot_mode=1",
					"miniboot_uri=" + uri,
					"miniboot_desc=" + emulateDesc,
				},
				nil)
			if err != nil {
				return err
			}
			fanoutCloser.Add("mdns-server", core.FuncCloser(func() error {
				mdnsServer.Shutdown()

				return nil
			}))
		}

		core.LogInf.Printf("emulator: started: device_id=%s url=%s\n",
			emulateDeviceID, server.URL())

		<-appContext.Done()

		return nil
	},
}

func newEmulatedStore() (*emulatedStore, error) {
	if emulateImagePath == "" {
		driver := steeprom.NewMemoryDriver(emulateSize)

		return &emulatedStore{
			store: steeprom.NewTimestampStore(driver, emulateOffset),
		}, nil
	}

	driver, err := steeprom.NewImageDriver(emulateImagePath, emulateSize)
	if err != nil {
		return nil, err
	}

	return &emulatedStore{
		store: steeprom.NewTimestampStore(driver, emulateOffset),
		save:  driver.Save,
	}, nil
}

func init() {
	emulateCmd.Flags().StringVar(&emulateHost, "host", "", "HTTP server host")
	emulateCmd.Flags().IntVar(&emulatePort, "port", 0,
		"HTTP server port, 0 - choose a random free port")
	emulateCmd.Flags().StringVar(&emulateImagePath, "image", "",
		"internal EEPROM image file path, empty - emulate in memory")
	emulateCmd.Flags().Uint32Var(&emulateSize, "size", 1024,
		"internal EEPROM size, in bytes")
	emulateCmd.Flags().Uint32Var(&emulateOffset, "offset", steeprom.ConfigStart,
		"offset of the configuration region")
	emulateCmd.Flags().StringVar(&emulateDeviceID, "device-id", "mcu-emulator",
		"unique device identifier")
	emulateCmd.Flags().StringVar(&emulateApp, "app", "APPNAME",
		"name of the flashed application")
	emulateCmd.Flags().StringVar(&emulateDesc, "desc", "emulated-device",
		"human readable device description")
	emulateCmd.Flags().StringVar(&emulateURI, "uri", "",
		"device URI to announce over mDNS, empty - derive from the hostname")
	emulateCmd.Flags().BoolVar(&emulateMdnsDisabled, "mdns-disable", false,
		"disable mDNS device announcement")
}
