// seehuhn.de/go/sketchpad - a freehand drawing surface
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package server

import (
	"fmt"
	"net"

	"github.com/hashicorp/mdns"
)

// ServiceType is the DNS-SD service type under which sketchpad servers
// announce themselves.
const ServiceType = "_sketchpad._tcp"

// Advertise announces the server on the local network via mDNS, using the
// host name and addresses of the machine. The caller must shut the
// returned server down when the HTTP server stops.
func Advertise(instance string, port int, info ...string) (*mdns.Server, error) {
	svc, err := newService(instance, "", port, nil, info)
	if err != nil {
		return nil, err
	}
	srv, err := mdns.NewServer(&mdns.Config{Zone: svc})
	if err != nil {
		return nil, fmt.Errorf("starting mDNS responder: %w", err)
	}
	return srv, nil
}

// newService describes the service. Empty host and nil ips select the
// local host name and its addresses.
func newService(instance, host string, port int, ips []net.IP, info []string) (*mdns.MDNSService, error) {
	if len(info) == 0 {
		info = []string{"path=/ws"}
	}
	svc, err := mdns.NewMDNSService(instance, ServiceType, "", host, port, ips, info)
	if err != nil {
		return nil, fmt.Errorf("mDNS service %q: %w", instance, err)
	}
	return svc, nil
}
