package services

import "net"

type Connectivity interface {
	IsNetworkAvailable() bool
}

// InterfaceConnectivity reports the network as available when any
// non-loopback interface is up and has an address.
type InterfaceConnectivity struct {
	interfaces func() ([]net.Interface, error)
}

func NewInterfaceConnectivity() *InterfaceConnectivity {
	return &InterfaceConnectivity{interfaces: net.Interfaces}
}

func (c *InterfaceConnectivity) IsNetworkAvailable() bool {
	ifaces, err := c.interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}

// StaticConnectivity always answers the same, for tests and --offline.
type StaticConnectivity bool

func (s StaticConnectivity) IsNetworkAvailable() bool { return bool(s) }
