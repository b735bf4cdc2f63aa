// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsLogName   = "metrics"
	readWriteTimeout = 10 * time.Second
)

// MetricsConfiguration - configuration file data for the metrics endpoint
type MetricsConfiguration struct {
	Listen []string `gluamapper:"listen" json:"listen"`
	Allow  []string `gluamapper:"allow" json:"allow"`
}

// DetailsFunc - data served as JSON on /registryd/details
type DetailsFunc func() interface{}

type metricsListener struct {
	sync.Mutex

	log       *logger.L
	networks  []string
	addresses []string
	mux       *http.ServeMux
	servers   []*http.Server
	bound     []string
}

// NewMetrics - plain HTTP /metrics and /registryd/details
//
// returns nil if no listen address is configured
func NewMetrics(configuration *MetricsConfiguration, log *logger.L, details DetailsFunc) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", metricsLogName)
		return nil, nil
	}

	networks, addresses, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	allow := make([]*net.IPNet, 0, len(configuration.Allow))
	for _, ip := range configuration.Allow {
		_, cidr, err := net.ParseCIDR(strings.TrimSpace(ip))
		if nil != err {
			log.Errorf("%s allow: %q error: %s", metricsLogName, ip, err)
			return nil, err
		}
		allow = append(allow, cidr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", restrict(allow, promhttp.Handler()))
	mux.Handle("/registryd/details", restrict(allow, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(details())
	})))

	return &metricsListener{
		log:       log,
		networks:  networks,
		addresses: addresses,
		mux:       mux,
	}, nil
}

// only addresses inside one of the networks, or anyone if none are given
func restrict(allow []*net.IPNet, next http.Handler) http.Handler {
	if 0 == len(allow) {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if nil == err {
			ip := net.ParseIP(host)
			for _, n := range allow {
				if n.Contains(ip) {
					next.ServeHTTP(w, r)
					return
				}
			}
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	})
}

// Serve - start all HTTP servers
func (m *metricsListener) Serve() error {
	m.Lock()
	defer m.Unlock()

	for i, listen := range m.addresses {
		m.log.Infof("starting server: %s on: %q", metricsLogName, listen)
		l, err := net.Listen(m.networks[i], listen)
		if nil != err {
			m.log.Errorf("%s listen error: %s", metricsLogName, err)
			return err
		}
		s := &http.Server{
			Handler:        m.mux,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		m.servers = append(m.servers, s)
		m.bound = append(m.bound, l.Addr().String())

		go func() {
			if err := s.Serve(l); http.ErrServerClosed != err {
				m.log.Errorf("%s serve error: %s", metricsLogName, err)
			}
		}()
	}
	return nil
}

// Addresses - bound addresses once serving
func (m *metricsListener) Addresses() []string {
	m.Lock()
	defer m.Unlock()

	if 0 == len(m.bound) {
		return m.addresses
	}
	return append([]string(nil), m.bound...)
}

// Stop - shut the servers down
func (m *metricsListener) Stop() {
	m.Lock()
	defer m.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), readWriteTimeout)
	defer cancel()
	for _, s := range m.servers {
		_ = s.Shutdown(ctx)
	}
	m.servers = nil
	m.bound = nil
}
