package device

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4k3r-org/miniboot/components/status"
)

type testFetcher struct {
	buf []byte
	err error
}

func (f *testFetcher) Fetch() ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.buf, nil
}

type testReportHandler struct {
	err     error
	uri     string
	reports []Report
}

func (h *testReportHandler) HandleReport(uri string, report Report) error {
	if h.err != nil {
		return h.err
	}

	h.uri = uri
	h.reports = append(h.reports, report)

	return nil
}

func TestPollDeviceFetchError(t *testing.T) {
	fetcher := &testFetcher{err: status.StatusError}
	handler := &testReportHandler{}

	device := NewPollDevice("http://mcu.local", fetcher, handler)
	require.Equal(t, status.StatusError, device.Run())
	require.Equal(t, 0, len(handler.reports))
}

func TestPollDeviceInvalidJSON(t *testing.T) {
	fetcher := &testFetcher{buf: []byte("not-a-json")}
	handler := &testReportHandler{}

	device := NewPollDevice("http://mcu.local", fetcher, handler)
	require.NotNil(t, device.Run())
}

func TestPollDeviceMalformedReport(t *testing.T) {
	for _, buf := range []string{
		`{}`,
		`{"device_id": "mcu-01"}`,
		`{"timestamp": 123}`,
		`{"device_id": "", "timestamp": 123}`,
		`{"device_id": "mcu-01", "timestamp": "123"}`,
		`{"device_id": "mcu-01", "timestamp": -1}`,
		`{"device_id": "mcu-01", "timestamp": 4294967296}`,
	} {
		fetcher := &testFetcher{buf: []byte(buf)}
		handler := &testReportHandler{}

		device := NewPollDevice("http://mcu.local", fetcher, handler)
		require.NotNil(t, device.Run(), "report: %s", buf)
		require.Equal(t, 0, len(handler.reports))
	}
}

func TestPollDeviceHandlerError(t *testing.T) {
	fetcher := &testFetcher{buf: []byte(`{"device_id": "mcu-01", "timestamp": 123}`)}
	handler := &testReportHandler{err: status.StatusError}

	device := NewPollDevice("http://mcu.local", fetcher, handler)

	err := device.Run()
	require.NotNil(t, err)
	require.ErrorIs(t, err, status.StatusError)
}

func TestPollDeviceHandleReport(t *testing.T) {
	fetcher := &testFetcher{
		buf: []byte(`{"device_id": "mcu-01", "app": "blink", "timestamp": 1736600000}`),
	}
	handler := &testReportHandler{}

	device := NewPollDevice("http://mcu.local", fetcher, handler)
	require.Nil(t, device.Run())

	require.Equal(t, "http://mcu.local", handler.uri)
	require.Equal(t, 1, len(handler.reports))
	require.Equal(t, Report{
		DeviceID:  "mcu-01",
		App:       "blink",
		Timestamp: 1736600000,
	}, handler.reports[0])
}

func TestPollDeviceIDMismatch(t *testing.T) {
	fetcher := &testFetcher{buf: []byte(`{"device_id": "mcu-01", "timestamp": 123}`)}
	handler := &testReportHandler{}

	device := NewPollDevice("http://mcu.local", fetcher, handler)
	require.Nil(t, device.Run())

	fetcher.buf = []byte(`{"device_id": "mcu-02", "timestamp": 123}`)
	require.NotNil(t, device.Run())
	require.Equal(t, 1, len(handler.reports))
}
