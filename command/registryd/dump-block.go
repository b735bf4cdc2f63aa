// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

type eventItem struct {
	Type string      `json:"type"`
	Data event.Event `json:"data"`
}

type transactionItem struct {
	Index  int                            `json:"index"`
	TxId   digest.Digest                  `json:"txId"`
	Data   *transactionrecord.Transaction `json:"data"`
	Events []eventItem                    `json:"events"`
}

type blockResult struct {
	Digest       digest.Digest     `json:"digest"`
	Header       *block.Header     `json:"header"`
	Transactions []transactionItem `json:"transactions"`
}

// dump of a particular block
func dumpBlock(store *storage.Store, number uint64) (*blockResult, error) {
	snapshot, err := store.Snapshot()
	if nil != err {
		return nil, err
	}
	defer snapshot.Release()

	b, err := block.Get(snapshot, number)
	if nil != err {
		return nil, err
	}
	records, err := block.Events(snapshot, number)
	if nil != err {
		return nil, err
	}

	txs := make([]transactionItem, len(b.Transactions))
	for i, packed := range b.Transactions {
		transaction, err := packed.UnpackTransaction()
		if nil != err {
			return nil, err
		}
		events := []eventItem{}
		for _, e := range block.TransactionEvents(records, uint64(i)) {
			events = append(events, eventItem{
				Type: event.Name(e),
				Data: e,
			})
		}
		txs[i] = transactionItem{
			Index:  i,
			TxId:   packed.Id(),
			Data:   transaction,
			Events: events,
		}
	}

	result := &blockResult{
		Digest:       b.Hash(),
		Header:       &b.Header,
		Transactions: txs,
	}

	return result, nil
}
