package stinfluxdb

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/m4k3r-org/miniboot/components/core"
	"github.com/m4k3r-org/miniboot/components/device"
)

// DBParams provides various configuration options for influxDB.
type DBParams struct {
	URL    string
	Org    string
	Token  string
	Bucket string
}

// FlashEventHandler stores firmware flash events in influxDB.
//
// References:
//   - https://docs.influxdata.com/influxdb/cloud/get-started
//   - https://docs.influxdata.com/influxdb/cloud/api-guide/client-libraries/go/
type FlashEventHandler struct {
	ctx         context.Context
	dbClient    influxdb2.Client
	writeClient api.WriteAPIBlocking
}

// NewFlashEventHandler initializes influxDB handler.
//
// Parameters:
//   - ctx - parent context.
//   - closer - to register the handler for the underlying resource deallocation.
//   - params - various influxDB configuration parameters.
func NewFlashEventHandler(
	ctx context.Context,
	closer *core.FanoutCloser,
	params DBParams,
) *FlashEventHandler {
	dbClient := influxdb2.NewClient(params.URL, params.Token)
	writeClient := dbClient.WriteAPIBlocking(params.Org, params.Bucket)

	handler := &FlashEventHandler{
		ctx:         ctx,
		dbClient:    dbClient,
		writeClient: writeClient,
	}

	closer.Add("influxdb-flash-event-handler", handler)

	return handler
}

// HandleReport stores the firmware report as a flash event in influxDB.
func (h *FlashEventHandler) HandleReport(uri string, report device.Report) error {
	point := influxdb2.NewPoint("flash",
		map[string]string{"device_id": report.DeviceID},
		map[string]any{
			"uri":       uri,
			"app":       report.App,
			"timestamp": report.Timestamp,
		},
		time.Unix(report.Timestamp, 0))

	if err := h.writeClient.WritePoint(h.ctx, point); err != nil {
		return fmt.Errorf("influxdb-flash-event-handler: failed to write to DB: %w", err)
	}

	return nil
}

// Close stops writing data to the DB.
func (h *FlashEventHandler) Close() error {
	h.dbClient.Close()

	return nil
}
