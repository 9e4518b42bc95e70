package sysmdns

import "net"

// MinibootServiceName is the mDNS service announced by flashable devices.
const MinibootServiceName = "_miniboot._tcp"

// Service is a single mDNS service discovered on the local network.
type Service interface {
	// Instance returns mDNS service instance name, e.g. "MCU Blink Firmware".
	Instance() string

	// Name returns mDNS service name, e.g. "_miniboot._tcp".
	Name() string

	// Hostname returns host machine DNS name, e.g. "mcu-blink.local".
	Hostname() string

	// Port returns service port, e.g. 8081.
	Port() int

	// TxtRecords returns service txt records, e.g. ["miniboot_mode=1"].
	TxtRecords() []string

	// Addrs returns host machine IP addresses.
	Addrs() []net.IP
}

// ServiceHandler is a mDNS service handler.
type ServiceHandler interface {
	// HandleService handles the mDNS service discovered over local network.
	HandleService(service Service) error
}
