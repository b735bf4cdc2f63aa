// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/currency"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/fees"
	"github.com/bitmark-inc/registryd/registry"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// Rejected - a transaction that was not included in the block
type Rejected struct {
	Id  digest.Digest
	Err error
}

// Executor - the single writer that applies blocks to a store
type Executor struct {
	sync.Mutex

	log         *logger.L
	store       *storage.Store
	machine     *registry.Machine
	genesisHash digest.Digest
}

// NewExecutor - executor for an initialised store
func NewExecutor(log *logger.L, store *storage.Store) (*Executor, error) {
	snapshot, err := store.Snapshot()
	if nil != err {
		return nil, err
	}
	defer snapshot.Release()

	genesisHash, found := state.GenesisHash(snapshot)
	if !found {
		return nil, fault.NotInitialised
	}

	return &Executor{
		log:         log,
		store:       store,
		machine:     registry.New(log),
		genesisHash: genesisHash,
	}, nil
}

// GenesisHash - the chain this executor applies transactions for
func (e *Executor) GenesisHash() digest.Digest {
	return e.genesisHash
}

// checks that do not depend on the nonce
func (e *Executor) admit(r storage.Reader, packed transactionrecord.Packed) (*transactionrecord.Transaction, digest.Digest, error) {
	id := packed.Id()
	tx, err := packed.UnpackTransaction()
	if nil != err {
		return nil, id, err
	}

	if _, found := TransactionLocation(r, id); found {
		return nil, id, fault.TransactionDuplicate
	}
	if e.genesisHash != tx.GenesisHash {
		return nil, id, fault.WrongGenesisHash
	}
	if err := tx.CheckSignature(); nil != err {
		return nil, id, err
	}
	if err := fees.CheckMinimum(tx.Message, tx.Fee); nil != err {
		return nil, id, err
	}
	return tx, id, nil
}

// Validate - check a transaction could be included after the latest block
//
// nonces above the expected value are accepted so that a sequence of
// transactions from one account can wait in the pending pool
func (e *Executor) Validate(packed transactionrecord.Packed) (*transactionrecord.Transaction, error) {
	snapshot, err := e.store.Snapshot()
	if nil != err {
		return nil, err
	}
	defer snapshot.Release()

	tx, _, err := e.admit(snapshot, packed)
	if nil != err {
		return nil, err
	}
	if tx.Nonce < state.Nonce(snapshot, tx.Author) {
		return nil, fault.NonceTooLow
	}
	payer := fees.PayerAccount(snapshot, tx.Author, tx.Message)
	if currency.FreeBalance(snapshot, payer) < tx.Fee {
		return nil, fault.InsufficientBalance
	}
	return tx, nil
}

// ApplyBlock - apply transactions in order as the next block
//
// transactions failing admission, nonce or fee payment are rejected
// and not included; an included transaction whose message fails still
// pays its fee and records ExtrinsicFailed
func (e *Executor) ApplyBlock(author *account.Account, timestamp uint64, transactions []transactionrecord.Packed) (*Block, []Rejected, error) {
	e.Lock()
	defer e.Unlock()

	if len(transactions) > MaximumTransactions {
		transactions = transactions[:MaximumTransactions]
	}

	dbTx, err := e.store.Begin()
	if nil != err {
		return nil, nil, err
	}
	defer dbTx.Abort()

	head, found := state.Head(dbTx)
	if !found {
		return nil, nil, fault.NotInitialised
	}
	parent, err := Get(dbTx, head)
	if nil != err {
		return nil, nil, err
	}

	block := &Block{
		Header: Header{
			Number:     head + 1,
			Parent:     parent.Hash(),
			Author:     author,
			Timestamp:  timestamp,
			Randomness: Randomness(parent.Hash(), head+1),
		},
		Transactions: []transactionrecord.Packed{},
	}
	ctx := &registry.BlockContext{
		Number:     block.Number,
		Author:     author,
		Randomness: block.Randomness,
	}

	records := []event.Record{}
	rejected := []Rejected{}

	for _, packed := range transactions {
		tx, id, err := e.admit(dbTx, packed)
		if nil == err {
			expected := state.Nonce(dbTx, tx.Author)
			if tx.Nonce < expected {
				err = fault.NonceTooLow
			} else if tx.Nonce > expected {
				err = fault.NonceTooHigh
			}
		}
		if nil != err {
			e.log.Debugf("block: %d  rejected: %s  error: %s", block.Number, id, err)
			rejected = append(rejected, Rejected{Id: id, Err: err})
			transactionsTotal.WithLabelValues(outcomeRejected).Inc()
			continue
		}

		position := uint64(len(block.Transactions))

		dbTx.Layer()
		state.SetNonce(dbTx, tx.Author, tx.Nonce+1)
		if _, err := fees.Pay(dbTx, tx.Author, tx.Fee, tx.Message, author); nil != err {
			logger.PanicIfError("block: abort fee layer", dbTx.AbortLayer())
			e.log.Debugf("block: %d  rejected: %s  fee error: %s", block.Number, id, err)
			rejected = append(rejected, Rejected{Id: id, Err: err})
			transactionsTotal.WithLabelValues(outcomeRejected).Inc()
			continue
		}

		dbTx.Layer()
		result, err := e.machine.Apply(dbTx, ctx, tx.Author, tx.Message)
		if nil != err {
			logger.PanicIfError("block: abort message layer", dbTx.AbortLayer())
			records = append(records, event.Record{TxIndex: position, Event: event.Failed(err)})
			transactionsTotal.WithLabelValues(outcomeFailed).Inc()
		} else {
			logger.PanicIfError("block: commit message layer", dbTx.CommitLayer())
			records = append(records,
				event.Record{TxIndex: position, Event: result},
				event.Record{TxIndex: position, Event: &event.ExtrinsicSuccess{}},
			)
			transactionsTotal.WithLabelValues(outcomeSuccess).Inc()
		}
		logger.PanicIfError("block: commit transaction layer", dbTx.CommitLayer())

		block.Transactions = append(block.Transactions, packed)

		// so a duplicate later in this block is rejected
		putLocation(dbTx, id, Location{BlockNumber: block.Number, Position: position})
	}

	block.TransactionsHash = TransactionsHash(block.Transactions)

	Put(dbTx, block, records)
	state.SetHead(dbTx, block.Number)

	if err := dbTx.Commit(); nil != err {
		return nil, nil, err
	}

	blocksApplied.Inc()
	blockHeight.Set(float64(block.Number))
	e.log.Infof("block: %d  hash: %s  included: %d  rejected: %d", block.Number, block.Hash(), len(block.Transactions), len(rejected))

	return block, rejected, nil
}
