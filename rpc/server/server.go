// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - registration of all RPC services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/counter"
	"github.com/bitmark-inc/registryd/rpc/account"
	"github.com/bitmark-inc/registryd/rpc/node"
	"github.com/bitmark-inc/registryd/rpc/registry"
	"github.com/bitmark-inc/registryd/rpc/transaction"
	"github.com/bitmark-inc/registryd/storage"
)

// Create - an RPC server with the Account, Node, Registry and
// Transaction services
func Create(log *logger.L, version string, chain string, store *storage.Store, pool transaction.Pool, rpcCount *counter.Counter) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()

	register(log, server, account.New(log, store))
	register(log, server, node.New(log, store, pool, chain, start, version, rpcCount))
	register(log, server, registry.New(log, store))
	register(log, server, transaction.New(log, store, pool))

	return server
}

func register(log *logger.L, server *rpc.Server, service interface{}) {
	if err := server.Register(service); nil != err {
		logger.Panicf("rpc register: %T error: %s", service, err)
	}
}
