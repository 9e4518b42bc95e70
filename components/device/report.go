package device

// Report is the firmware state reported by a single device.
type Report struct {
	// DeviceID is a unique device identifier.
	DeviceID string `json:"device_id"`

	// App is the name of the flashed application.
	App string `json:"app"`

	// Timestamp is the timestamp of the latest application flashing.
	Timestamp int64 `json:"timestamp"`
}

// ReportHandler to handle firmware reports from a device.
type ReportHandler interface {
	// HandleReport handles the firmware report from the device.
	//
	// Parameters:
	//   - uri - device URI, how device can be reached.
	//   - report - firmware report received from the device.
	HandleReport(uri string, report Report) error
}

// Fetcher to fetch raw device data.
type Fetcher interface {
	// Fetch the device data.
	Fetch() ([]byte, error)
}
