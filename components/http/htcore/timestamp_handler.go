package htcore

import (
	"fmt"
	"net/http"
	"strconv"
)

// TimestampStore to read and write the flash timestamp of a device.
//
// Remarks:
//   - Implementation should be thread-safe, the handler can be called from
//     multiple goroutines.
type TimestampStore interface {
	// ReadTimestamp restores the persisted timestamp.
	ReadTimestamp() (uint32, error)

	// WriteTimestamp persists the timestamp.
	WriteTimestamp(value uint32) error
}

// TimestampHandler handles the flash timestamp configuration over HTTP.
type TimestampHandler struct {
	store TimestampStore
}

// NewTimestampHandler creates an HTTP handler for the flash timestamp.
func NewTimestampHandler(store TimestampStore) *TimestampHandler {
	return &TimestampHandler{store: store}
}

// ServeHTTP implements an HTTP endpoint logic.
//
// A GET request without parameters returns the persisted timestamp.
// A GET request with the "value" query parameter persists the new timestamp.
func (h *TimestampHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "error: unsupported method", http.StatusMethodNotAllowed)

		return
	}

	response := ""

	str := r.URL.Query().Get("value")
	if str == "" {
		timestamp, err := h.store.ReadTimestamp()
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to read timestamp: %v", err),
				http.StatusInternalServerError)

			return
		}

		response = strconv.FormatUint(uint64(timestamp), 10)
	} else {
		timestamp, err := strconv.ParseUint(str, 10, 32)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		if err := h.store.WriteTimestamp(uint32(timestamp)); err != nil {
			http.Error(w, fmt.Sprintf("failed to write timestamp: %v", err),
				http.StatusInternalServerError)

			return
		}

		response = "OK"
	}

	WriteText(w, response)
}
