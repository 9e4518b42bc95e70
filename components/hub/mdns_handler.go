package hub

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m4k3r-org/miniboot/components/status"
	"github.com/m4k3r-org/miniboot/components/system/sysmdns"
)

// Txt records announced by a flashable device.
const (
	txtRecordMode = "miniboot_mode"
	txtRecordURI  = "miniboot_uri"
	txtRecordDesc = "miniboot_desc"
)

// MdnsHandler registers mDNS-discovered devices in the store.
type MdnsHandler struct {
	store Store
}

// NewMdnsHandler is an initialization of MdnsHandler.
//
// Parameters:
//   - store to register discovered devices.
func NewMdnsHandler(store Store) *MdnsHandler {
	return &MdnsHandler{store: store}
}

// HandleService handles mDNS service discovered over local network.
//
// The device should announce the following txt records:
//   - miniboot_mode - "1" to enable automatic registration.
//   - miniboot_uri - device URI, e.g. "http://mcu-blink.local:8081/api/v1".
//   - miniboot_desc - human readable device description.
//
// Services without the complete set of records are ignored.
func (h *MdnsHandler) HandleService(service sysmdns.Service) error {
	records := make(map[string]string)

	for _, record := range service.TxtRecords() {
		key, value, found := strings.Cut(record, "=")
		if !found || key == "" || value == "" {
			continue
		}

		records[key] = value
	}

	mode, ok := records[txtRecordMode]
	if !ok {
		return nil
	}

	uri, ok := records[txtRecordURI]
	if !ok {
		return nil
	}

	desc, ok := records[txtRecordDesc]
	if !ok {
		return nil
	}

	if mode != "1" {
		return fmt.Errorf("mdns-handler: failed to handle service: uri=%s mode=%s: %w",
			uri, mode, status.StatusInvalidArg)
	}

	if err := h.store.Add(uri, desc); err != nil {
		if errors.Is(err, ErrDeviceExist) {
			return nil
		}

		return err
	}

	return nil
}
