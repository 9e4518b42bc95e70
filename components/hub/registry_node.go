package hub

import (
	"context"

	"github.com/m4k3r-org/miniboot/components/core"
	"github.com/m4k3r-org/miniboot/components/system/syssched"
)

type registryNode struct {
	record  Record
	started bool
	cancel  context.CancelFunc
	runner  *syssched.AsyncTaskRunner
}

func (n *registryNode) start() {
	if n.started {
		return
	}
	n.started = true

	if err := n.runner.Start(); err != nil {
		core.LogErr.Printf("device-registry: failed to start polling: uri=%s err=%v\n",
			n.record.URI, err)
	}
}

func (n *registryNode) close() error {
	n.cancel()

	if !n.started {
		return nil
	}
	n.started = false

	return n.runner.Stop()
}

type logErrorHandler struct {
	uri string
}

func (h *logErrorHandler) HandleError(err error) {
	core.LogWrn.Printf("device-registry: failed to poll device: uri=%s err=%v\n",
		h.uri, err)
}
