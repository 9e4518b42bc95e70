package device

import (
	"encoding/json"
	"fmt"
	"math"
)

// PollDevice actively fetches the firmware report from a device.
type PollDevice struct {
	uri      string
	fetcher  Fetcher
	handler  ReportHandler
	deviceID string
}

// NewPollDevice initializes polling device.
//
// Parameters:
//   - uri - device URI, passed as-is to the report handler.
//   - fetcher to fetch the device firmware report.
//   - handler to handle the fetched report.
func NewPollDevice(uri string, fetcher Fetcher, handler ReportHandler) *PollDevice {
	return &PollDevice{
		uri:     uri,
		fetcher: fetcher,
		handler: handler,
	}
}

// Run fetches the firmware report and passes it to the underlying handler.
func (d *PollDevice) Run() error {
	report, err := d.fetchReport()
	if err != nil {
		return err
	}

	if err := d.handler.HandleReport(d.uri, report); err != nil {
		return fmt.Errorf("poll-device: failed to handle report: uri=%s err=%w",
			d.uri, err)
	}

	return nil
}

func (d *PollDevice) fetchReport() (Report, error) {
	buf, err := d.fetcher.Fetch()
	if err != nil {
		return Report{}, err
	}

	var js map[string]any
	if err := json.Unmarshal(buf, &js); err != nil {
		return Report{}, err
	}

	report, err := parseReport(js)
	if err != nil {
		return Report{}, err
	}

	if d.deviceID != "" && d.deviceID != report.DeviceID {
		return Report{}, fmt.Errorf(
			"poll-device: failed to fetch report: device ID mismatch: want=%s got=%s",
			d.deviceID, report.DeviceID)
	}

	d.deviceID = report.DeviceID

	return report, nil
}

func parseReport(js map[string]any) (Report, error) {
	id, ok := js["device_id"]
	if !ok {
		return Report{}, fmt.Errorf(
			"poll-device: failed to fetch report: missing device_id field")
	}

	deviceID, ok := id.(string)
	if !ok || deviceID == "" {
		return Report{}, fmt.Errorf(
			"poll-device: failed to fetch report: invalid device_id field")
	}

	app, _ := js["app"].(string)

	ts, ok := js["timestamp"]
	if !ok {
		return Report{}, fmt.Errorf(
			"poll-device: failed to fetch report: missing timestamp field")
	}

	timestamp, ok := ts.(float64)
	if !ok {
		return Report{}, fmt.Errorf(
			"poll-device: failed to fetch report: invalid type for timestamp")
	}

	// -1 is reported until the device is flashed for the first time.
	if timestamp < 0 || timestamp > math.MaxUint32 {
		return Report{}, fmt.Errorf(
			"poll-device: failed to fetch report: invalid timestamp: value=%v", timestamp)
	}

	return Report{
		DeviceID:  deviceID,
		App:       app,
		Timestamp: int64(timestamp),
	}, nil
}
