package sysmdns

import (
	"context"
	"net"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/m4k3r-org/miniboot/components/core"
)

// ZeroconfBrowserParams represents various options for zeroconf mDNS browser.
type ZeroconfBrowserParams struct {
	// Service is a mDNS service to lookup for, e.g. "_miniboot._tcp".
	Service string

	// Domain is a mDNS domain, e.g. "local".
	Domain string

	// Timeout is a single mDNS browsing operation timeout.
	Timeout time.Duration
}

// ZeroconfBrowser browses the local network for the mDNS devices.
//
// References:
//   - https://github.com/grandcat/zeroconf
type ZeroconfBrowser struct {
	params  ZeroconfBrowserParams
	ctx     context.Context
	handler ServiceHandler
}

// NewZeroconfBrowser is an initialization of ZeroconfBrowser.
//
// Parameters:
//   - ctx - parent context.
//   - handler to be notified about each discovered mDNS service.
//   - params - various browser options.
func NewZeroconfBrowser(
	ctx context.Context,
	handler ServiceHandler,
	params ZeroconfBrowserParams,
) *ZeroconfBrowser {
	return &ZeroconfBrowser{
		params:  params,
		ctx:     ctx,
		handler: handler,
	}
}

// Run executes a single mDNS lookup operation.
func (b *ZeroconfBrowser) Run() error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(b.ctx, b.params.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	if err := resolver.Browse(ctx, b.params.Service, b.params.Domain, entries); err != nil {
		return err
	}

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return nil
			}

			b.handleEntry(entry)

		case <-ctx.Done():
			return nil
		}
	}
}

func (b *ZeroconfBrowser) handleEntry(entry *zeroconf.ServiceEntry) {
	if entry == nil {
		return
	}

	if err := b.handler.HandleService(&zeroconfService{entry: entry}); err != nil {
		core.LogWrn.Printf("zeroconf-browser: failed to handle mDNS service:"+
			" instance=%s err=%v\n", entry.Instance, err)
	}
}

type zeroconfService struct {
	entry *zeroconf.ServiceEntry
}

func (s *zeroconfService) Instance() string {
	return s.entry.Instance
}

func (s *zeroconfService) Name() string {
	return s.entry.Service
}

func (s *zeroconfService) Hostname() string {
	return s.entry.HostName
}

func (s *zeroconfService) Port() int {
	return s.entry.Port
}

func (s *zeroconfService) TxtRecords() []string {
	return s.entry.Text
}

func (s *zeroconfService) Addrs() []net.IP {
	return append(append([]net.IP(nil), s.entry.AddrIPv4...), s.entry.AddrIPv6...)
}
