// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - network front ends of the daemon
package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/fault"
)

// Listener - a started front end
type Listener interface {
	Serve() error
	Addresses() []string
	Stop()
}

// network and address for each configured listen string
//
// "*:PORT" listens on tcp4 and tcp6
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	networks := make([]string, len(addrs))
	addresses := make([]string, len(addrs))
	for i, listen := range addrs {
		host, port, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("listen address: %q error: %s", listen, err)
			return nil, nil, fault.InvalidListenAddress
		}

		switch {
		case "*" == host:
			networks[i] = "tcp"
			host = "::"
		case strings.Contains(host, ":"):
			networks[i] = "tcp6"
		default:
			networks[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen address: %q error: %s", listen, fault.InvalidIpAddress)
			return nil, nil, fault.InvalidIpAddress
		}
		addresses[i] = net.JoinHostPort(host, port)
	}
	return networks, addresses, nil
}
