package htcore

import (
	"fmt"
	"net/http"

	"github.com/m4k3r-org/miniboot/components/hub"
)

// RegistryHandler handles the device registration over HTTP.
type RegistryHandler struct {
	store hub.Store
}

// NewRegistryHandler creates an HTTP handler for the device registry.
func NewRegistryHandler(store hub.Store) *RegistryHandler {
	return &RegistryHandler{store: store}
}

// ServeHTTP implements an HTTP endpoint logic.
//
// A GET request without parameters returns records for all registered
// devices. The "op" query parameter modifies the registry:
//   - op=add&uri=...&desc=... registers a device.
//   - op=remove&uri=... removes a device.
func (h *RegistryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "error: unsupported method", http.StatusMethodNotAllowed)

		return
	}

	query := r.URL.Query()

	op := query.Get("op")
	if op == "" {
		WriteJSON(w, h.store.List())

		return
	}

	uri := query.Get("uri")
	if uri == "" {
		http.Error(w, "error: missing uri parameter", http.StatusBadRequest)

		return
	}

	switch op {
	case "add":
		if err := h.store.Add(uri, query.Get("desc")); err != nil {
			http.Error(w, fmt.Sprintf("failed to add device: %v", err),
				http.StatusInternalServerError)

			return
		}

	case "remove":
		if err := h.store.Remove(uri); err != nil {
			http.Error(w, fmt.Sprintf("failed to remove device: %v", err),
				http.StatusInternalServerError)

			return
		}

	default:
		http.Error(w, "error: unsupported operation", http.StatusBadRequest)

		return
	}

	WriteText(w, "OK")
}
