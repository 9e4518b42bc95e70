package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m4k3r-org/miniboot/components/core"
	"github.com/m4k3r-org/miniboot/components/device"
	"github.com/m4k3r-org/miniboot/components/http/htcore"
	"github.com/m4k3r-org/miniboot/components/hub"
	"github.com/m4k3r-org/miniboot/components/storage/stcore"
	"github.com/m4k3r-org/miniboot/components/storage/stinfluxdb"
	"github.com/m4k3r-org/miniboot/components/system/sysmdns"
	"github.com/m4k3r-org/miniboot/components/system/syssched"
)

var (
	serveHost          string
	servePort          int
	serveDBPath        string
	serveFetchInterval time.Duration
	serveFetchTimeout  time.Duration
	serveMdnsDisabled  bool
	serveMdnsInterval  time.Duration
	serveMdnsTimeout   time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the hub: track flashed devices over the local network",
	RunE: func(_ *cobra.Command, _ []string) error {
		appContext, cancelFunc := signal.NotifyContext(context.Background(),
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGQUIT)
		defer cancelFunc()

		fanoutCloser := &core.FanoutCloser{}
		defer fanoutCloser.Close()

		// Registration is not persisted without a database path.
		var bucket stcore.DB = &stcore.NoopDB{}
		if serveDBPath != "" {
			db, err := stcore.NewBboltDB(serveDBPath, nil)
			if err != nil {
				return err
			}
			fanoutCloser.Add("bbolt-db", core.FuncCloser(db.Close))

			bucket = stcore.NewBboltDBBucket(db, "devices")
		}

		var sink device.ReportHandler
		if url := os.Getenv("INFLUXDB_URL"); url != "" {
			sink = stinfluxdb.NewFlashEventHandler(
				appContext,
				fanoutCloser,
				stinfluxdb.DBParams{
					URL:    url,
					Org:    os.Getenv("INFLUXDB_ORG"),
					Token:  os.Getenv("INFLUXDB_API_TOKEN"),
					Bucket: os.Getenv("INFLUXDB_BUCKET"),
				})
		}

		registry := hub.NewRegistry(
			appContext,
			bucket,
			sink,
			hub.RegistryParams{
				FetchInterval: serveFetchInterval,
				FetchTimeout:  serveFetchTimeout,
			})

		mux := http.NewServeMux()
		mux.Handle("/api/v1/registry", htcore.NewRegistryHandler(registry))

		server, err := htcore.NewServer(mux, htcore.ServerParams{
			Host: serveHost,
			Port: servePort,
		})
		if err != nil {
			return err
		}
		// The server is closed before the registry, so that no HTTP request
		// reaches the registry after it is closed.
		fanoutCloser.Add("http-server", server)
		fanoutCloser.Add("device-registry", registry)

		if !serveMdnsDisabled {
			serviceHandler := &sysmdns.FanoutServiceHandler{}
			serviceHandler.Add(hub.NewMdnsHandler(registry))

			browser := sysmdns.NewZeroconfBrowser(
				appContext,
				serviceHandler,
				sysmdns.ZeroconfBrowserParams{
					Service: sysmdns.MinibootServiceName,
					Domain:  "local",
					Timeout: serveMdnsTimeout,
				})

			runner := syssched.NewAsyncTaskRunner(appContext, browser, nil,
				syssched.AsyncTaskRunnerParams{
					UpdateInterval: serveMdnsInterval,
				})
			if err := runner.Start(); err != nil {
				return err
			}
			fanoutCloser.Add("mdns-browser", core.FuncCloser(runner.Stop))
		}

		registry.Start()
		server.Start()

		core.LogInf.Printf("hub: started: url=%s db=%s\n", server.URL(), serveDBPath)

		<-appContext.Done()

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "HTTP server host")
	serveCmd.Flags().IntVar(&servePort, "port", 17321, "HTTP server port")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "miniboot-hub.db",
		"device registry database file path, empty - don't persist registration")
	serveCmd.Flags().DurationVar(&serveFetchInterval, "fetch-interval", time.Second*5,
		"how often to fetch the firmware report from a device")
	serveCmd.Flags().DurationVar(&serveFetchTimeout, "fetch-timeout", time.Second*10,
		"how long to wait for the response from a device")
	serveCmd.Flags().BoolVar(&serveMdnsDisabled, "mdns-disable", false,
		"disable mDNS device discovery")
	serveCmd.Flags().DurationVar(&serveMdnsInterval, "mdns-interval", time.Minute,
		"how often to browse the local network for devices")
	serveCmd.Flags().DurationVar(&serveMdnsTimeout, "mdns-timeout", time.Second*10,
		"single mDNS browsing operation timeout")
}
