package discovery

import (
	"context"
	"net"
	"strconv"
)

const (
	// ServiceType is announced by web bridges that opt into LAN discovery.
	ServiceType   = "_yourcontrols-ui._tcp"
	DefaultDomain = "local"
)

type ServiceInfo struct {
	Name   string // instance name, the window title
	Type   string // service name, e.g., "_yourcontrols-ui._tcp"
	Domain string // domain, e.g., "local"
	Addr   net.IP
	Port   int
	Path   string // page path served by the bridge
}

// URL is the address a browser should open to reach the announced page.
func (s ServiceInfo) URL() string {
	host := "localhost"
	if s.Addr != nil {
		host = s.Addr.String()
	}
	path := s.Path
	if path == "" {
		path = "/"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(s.Port)) + path
}

type Adapter interface {
	Announce(ctx context.Context, service ServiceInfo) error
	Discover(ctx context.Context, service string) <-chan DiscoveryResult
}
