package hub

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m4k3r-org/miniboot/components/core"
	"github.com/m4k3r-org/miniboot/components/device"
	"github.com/m4k3r-org/miniboot/components/http/htclient"
	"github.com/m4k3r-org/miniboot/components/status"
	"github.com/m4k3r-org/miniboot/components/storage/stcore"
	"github.com/m4k3r-org/miniboot/components/system/syssched"
)

// ErrDeviceExist indicates that the device is already registered.
var ErrDeviceExist = errors.New("device already exists")

// Record is a description of a single registered device.
type Record struct {
	// URI - device URI, how device can be reached.
	URI string `json:"uri"`

	// Desc - human readable device description.
	Desc string `json:"desc"`

	// DeviceID - unique device identifier, reported by the device itself.
	DeviceID string `json:"device_id"`

	// App - name of the flashed application.
	App string `json:"app"`

	// FlashedAt - timestamp of the latest application flashing,
	// -1 until the first report is received.
	FlashedAt int64 `json:"flashed_at"`

	// AddedAt - timestamp of the device registration.
	AddedAt int64 `json:"added_at"`
}

// Store to manage device registration life-cycle.
type Store interface {
	// Add adds the device.
	//
	// Parameters:
	//   - uri - device URI, should be unique,
	//     e.g. "http://mcu-blink.local:8081/api/v1".
	//   - desc - human readable device description, e.g. "garage-door-mcu".
	//
	// Remarks:
	//   - ErrDeviceExist is returned if the device is already registered.
	Add(uri string, desc string) error

	// Remove removes the device associated with the provided URI.
	Remove(uri string) error

	// List returns records for all registered devices.
	List() []Record
}

// RegistryParams represents various configuration options for Registry.
type RegistryParams struct {
	// FetchInterval - how often to fetch the firmware report from a device.
	FetchInterval time.Duration

	// FetchTimeout - how long to wait for the response from a device.
	FetchTimeout time.Duration
}

// Registry keeps track of flashed devices.
//
// Device records are persisted in the database and restored on startup.
// Each registered device is periodically polled for its firmware report,
// the persisted flash timestamp only moves forward.
type Registry struct {
	ctx    context.Context
	db     stcore.DB
	sink   device.ReportHandler
	params RegistryParams

	mu      sync.Mutex
	started bool
	closed  bool
	nodes   map[string]*registryNode
}

// NewRegistry is an initialization of Registry.
//
// Parameters:
//   - ctx - parent context.
//   - db to persist device records.
//   - sink to be notified about each new flash report, can be nil.
//   - params - various configuration options.
func NewRegistry(
	ctx context.Context,
	db stcore.DB,
	sink device.ReportHandler,
	params RegistryParams,
) *Registry {
	r := &Registry{
		ctx:    ctx,
		db:     db,
		sink:   sink,
		params: params,
		nodes:  make(map[string]*registryNode),
	}

	if err := r.restoreNodes(); err != nil {
		core.LogErr.Printf("device-registry: failed to restore records: %v\n", err)
	}

	return r
}

// Start starts polling for the restored devices.
func (r *Registry) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started = true

	for _, node := range r.nodes {
		node.start()
	}
}

// Close stops polling for all registered devices.
//
// Remarks:
//   - Add and HandleReport fail with status.StatusInvalidState afterwards.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()

		return nil
	}
	r.closed = true

	nodes := r.nodes
	r.nodes = make(map[string]*registryNode)
	r.mu.Unlock()

	// A poll goroutine can be blocked in HandleReport on the registry mutex,
	// so the nodes are stopped outside of the critical section.
	for _, node := range nodes {
		if err := node.close(); err != nil {
			core.LogErr.Printf("device-registry: failed to close device: uri=%s err=%v\n",
				node.record.URI, err)
		}
	}

	return nil
}

// Add adds the device, see Store.
func (r *Registry) Add(uri string, desc string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return status.StatusInvalidState
	}

	key := hashURI(uri)

	if _, ok := r.nodes[key]; ok {
		return ErrDeviceExist
	}

	record := Record{
		URI:       uri,
		Desc:      desc,
		FlashedAt: -1,
		AddedAt:   time.Now().Unix(),
	}

	if err := r.persistRecord(key, record); err != nil {
		return fmt.Errorf("device-registry: failed to persist record: uri=%s err=%w",
			uri, err)
	}

	node := r.makeNode(record)
	r.nodes[key] = node

	if r.started {
		node.start()
	}

	core.LogInf.Printf("device-registry: device added: uri=%s desc=%s\n", uri, desc)

	return nil
}

// Remove removes the device associated with the provided URI, see Store.
func (r *Registry) Remove(uri string) error {
	r.mu.Lock()

	key := hashURI(uri)

	node, ok := r.nodes[key]
	if !ok {
		r.mu.Unlock()

		return status.StatusNoData
	}

	if err := r.db.Remove(key); err != nil {
		r.mu.Unlock()

		return err
	}

	delete(r.nodes, key)
	r.mu.Unlock()

	// The node poll goroutine delivers reports through HandleReport, which
	// takes the registry mutex, so the node is stopped outside of the
	// critical section.
	if err := node.close(); err != nil {
		return fmt.Errorf("device-registry: failed to stop polling: uri=%s err=%w",
			uri, err)
	}

	core.LogInf.Printf("device-registry: device removed: uri=%s\n", uri)

	return nil
}

// List returns records for all registered devices, see Store.
func (r *Registry) List() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]Record, 0, len(r.nodes))
	for _, node := range r.nodes {
		records = append(records, node.record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].URI < records[j].URI
	})

	return records
}

// HandleReport updates the device record with the received firmware report.
//
// Remarks:
//   - Reports older than the persisted flash timestamp are ignored.
func (r *Registry) HandleReport(uri string, report device.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return status.StatusInvalidState
	}

	key := hashURI(uri)

	node, ok := r.nodes[key]
	if !ok {
		return status.StatusNoData
	}

	if report.Timestamp <= node.record.FlashedAt {
		return nil
	}

	record := node.record
	record.DeviceID = report.DeviceID
	record.App = report.App
	record.FlashedAt = report.Timestamp

	if err := r.persistRecord(key, record); err != nil {
		return err
	}

	node.record = record

	core.LogInf.Printf("device-registry: flash report: uri=%s device_id=%s app=%s"+
		" timestamp=%v\n", uri, report.DeviceID, report.App, report.Timestamp)

	if r.sink != nil {
		if err := r.sink.HandleReport(uri, report); err != nil {
			core.LogErr.Printf("device-registry: failed to sink report: uri=%s err=%v\n",
				uri, err)
		}
	}

	return nil
}

func (r *Registry) restoreNodes() error {
	return r.db.ForEach(func(key string, b stcore.Blob) error {
		var record Record

		if err := json.Unmarshal(b.Data, &record); err != nil {
			return err
		}

		if key != hashURI(record.URI) {
			return fmt.Errorf("key mismatch: key=%s uri=%s", key, record.URI)
		}

		r.nodes[key] = r.makeNode(record)

		return nil
	})
}

func (r *Registry) persistRecord(key string, record Record) error {
	buf, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return r.db.Write(key, stcore.Blob{Data: buf})
}

func (r *Registry) makeNode(record Record) *registryNode {
	ctx, cancel := context.WithCancel(r.ctx)

	pollDevice := device.NewPollDevice(
		record.URI,
		htclient.NewURLFetcher(
			ctx,
			htclient.NewDefaultClient(),
			record.URI+"/firmware",
			r.params.FetchTimeout,
		),
		r,
	)

	runner := syssched.NewAsyncTaskRunner(
		ctx,
		pollDevice,
		&logErrorHandler{uri: record.URI},
		syssched.AsyncTaskRunnerParams{
			UpdateInterval: r.params.FetchInterval,
		},
	)

	return &registryNode{
		record: record,
		cancel: cancel,
		runner: runner,
	}
}

func hashURI(uri string) string {
	hash := sha256.Sum256([]byte(uri))

	return hex.EncodeToString(hash[:])
}
