// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - RPC submission of signed transactions and
// their inclusion status
package transaction

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/query"
	"github.com/bitmark-inc/registryd/reservoir"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

const (
	rateLimitTransaction = 200
	rateBurstTransaction = 100
)

// Pool - the pending transactions
type Pool interface {
	Store(packed transactionrecord.Packed) (digest.Digest, error)
	Status(id digest.Digest) (reservoir.Status, error)
	Count() int
}

// Transaction - an RPC entry for transaction related functions
type Transaction struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Store   *storage.Store
	Pool    Pool
}

// SubmitArguments - a signed packed transaction
type SubmitArguments struct {
	Transaction transactionrecord.Packed `json:"transaction"`
}

// SubmitReply - id to query status with
type SubmitReply struct {
	TxId digest.Digest `json:"txId"`
}

// StatusArguments - arguments for status RPC request
type StatusArguments struct {
	TxId digest.Digest `json:"txId"`
}

// New - create the service
func New(log *logger.L, store *storage.Store, pool Pool) *Transaction {
	return &Transaction{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitTransaction, rateBurstTransaction),
		Store:   store,
		Pool:    pool,
	}
}

// Submit - validate and queue a transaction
func (t *Transaction) Submit(arguments *SubmitArguments, reply *SubmitReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}
	if nil == arguments || 0 == len(arguments.Transaction) {
		return fault.MissingParameters
	}

	id, err := t.Pool.Store(arguments.Transaction)
	if nil != err {
		t.Log.Debugf("submit rejected: %s", err)
		return err
	}
	t.Log.Infof("submitted: %s", id)

	reply.TxId = id
	return nil
}

// Status - inclusion status of a transaction
func (t *Transaction) Status(arguments *StatusArguments, reply *query.Status) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}

	// pool first: a transaction leaves the pool only after its
	// block is committed
	state, poolErr := t.Pool.Status(arguments.TxId)

	snapshot, err := t.Store.Snapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()

	status, found, err := query.Included(snapshot, arguments.TxId)
	if nil != err {
		return err
	}
	if found {
		*reply = *status
		return nil
	}

	switch state {
	case reservoir.StatusPending:
		reply.State = query.StatePending
	case reservoir.StatusExpired:
		reply.State = query.StateExpired
	case reservoir.StatusRejected:
		reply.State = query.StateRejected
	default:
		reply.State = query.StateUnknown
	}
	if nil != poolErr {
		reply.Error = poolErr.Error()
	}
	return nil
}
