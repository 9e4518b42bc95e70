package htcore

import (
	"fmt"
	"net/http"

	"github.com/m4k3r-org/miniboot/components/device"
)

// FirmwareReportHandler serves the firmware report of a single device.
type FirmwareReportHandler struct {
	deviceID string
	app      string
	store    TimestampStore
}

// NewFirmwareReportHandler creates an HTTP handler for the firmware report.
//
// Parameters:
//   - deviceID - unique device identifier.
//   - app - name of the flashed application.
//   - store to read the flash timestamp.
func NewFirmwareReportHandler(
	deviceID string,
	app string,
	store TimestampStore,
) *FirmwareReportHandler {
	return &FirmwareReportHandler{
		deviceID: deviceID,
		app:      app,
		store:    store,
	}
}

// ServeHTTP implements an HTTP endpoint logic.
//
// An erased timestamp region is reported as -1: the device was never flashed.
func (h *FirmwareReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "error: unsupported method", http.StatusMethodNotAllowed)

		return
	}

	timestamp, err := h.store.ReadTimestamp()
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read timestamp: %v", err),
			http.StatusInternalServerError)

		return
	}

	report := device.Report{
		DeviceID:  h.deviceID,
		App:       h.app,
		Timestamp: int64(timestamp),
	}

	if timestamp == erasedTimestamp {
		report.Timestamp = -1
	}

	WriteJSON(w, report)
}

// erasedTimestamp is the value read from a never-written timestamp region,
// four erased EEPROM cells in a row.
const erasedTimestamp uint32 = 0xFFFFFFFF
