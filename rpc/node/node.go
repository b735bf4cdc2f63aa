// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC summary of the node state
package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/counter"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Pending - source of the pending transaction count
type Pending interface {
	Count() int
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Chain   string
	Store   *storage.Store
	Pending Pending
	counter *counter.Counter
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain       string        `json:"chain"`
	GenesisHash digest.Digest `json:"genesisHash"`
	Block       BlockInfo     `json:"block"`
	Pending     int           `json:"pending"`
	RPCs        uint64        `json:"rpcs"`
	PeakRPCs    uint64        `json:"peakRpcs"`
	Version     string        `json:"version"`
	Uptime      string        `json:"uptime"`
}

// BlockInfo - the highest block held by the node
type BlockInfo struct {
	Height uint64        `json:"height"`
	Hash   digest.Digest `json:"hash"`
}

// New - create the service
func New(log *logger.L, store *storage.Store, pending Pending, chain string, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Chain:   chain,
		Store:   store,
		Pending: pending,
		counter: counter,
	}
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Store {
		return fault.DatabaseIsNotSet
	}

	snapshot, err := node.Store.Snapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()

	genesisHash, found := state.GenesisHash(snapshot)
	if !found {
		return fault.NotInitialised
	}
	height, _ := state.Head(snapshot)
	head, err := block.Get(snapshot, height)
	if nil != err {
		return err
	}

	reply.Chain = node.Chain
	reply.GenesisHash = genesisHash
	reply.Block = BlockInfo{
		Height: height,
		Hash:   head.Hash(),
	}
	if nil != node.Pending {
		reply.Pending = node.Pending.Count()
	}
	reply.RPCs = node.counter.Uint64()
	reply.PeakRPCs = node.counter.Peak()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
