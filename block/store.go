// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/storage"
)

// Location - where a transaction was included
type Location struct {
	BlockNumber uint64 `json:"blockNumber,string"`
	Position    uint64 `json:"position"`
}

// big endian so blocks iterate in number order
func numberKey(number uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, number)
	return key
}

// Put - store a block with its events and index its transactions
func Put(w storage.Writer, block *Block, records []event.Record) {
	key := numberKey(block.Number)
	w.Put(storage.Pool.Blocks, key, block.Pack())
	w.Put(storage.Pool.BlockEvents, key, event.PackRecords(records))
	for i, packed := range block.Transactions {
		putLocation(w, packed.Id(), Location{BlockNumber: block.Number, Position: uint64(i)})
	}
}

// Get - a stored block
func Get(r storage.Reader, number uint64) (*Block, error) {
	buffer, found := r.Get(storage.Pool.Blocks, numberKey(number))
	if !found {
		return nil, fault.BlockNotFound
	}
	block, err := Unpack(buffer)
	if nil != err {
		logger.Panicf("block: %d corrupt record: %s", number, err)
	}
	return block, nil
}

// Events - the events emitted by a stored block
func Events(r storage.Reader, number uint64) ([]event.Record, error) {
	buffer, found := r.Get(storage.Pool.BlockEvents, numberKey(number))
	if !found {
		return nil, fault.BlockNotFound
	}
	return event.UnpackRecords(buffer)
}

// TransactionEvents - the events of the transaction at a position
func TransactionEvents(records []event.Record, position uint64) []event.Event {
	result := []event.Event{}
	for _, record := range records {
		if position == record.TxIndex {
			result = append(result, record.Event)
		}
	}
	return result
}

func putLocation(w storage.Writer, id digest.Digest, location Location) {
	buffer := codec.AppendVarint64(nil, location.BlockNumber)
	buffer = codec.AppendVarint64(buffer, location.Position)
	w.Put(storage.Pool.TxIndex, id[:], buffer)
}

// TransactionLocation - the block and position of an included transaction
func TransactionLocation(r storage.Reader, id digest.Digest) (Location, bool) {
	buffer, found := r.Get(storage.Pool.TxIndex, id[:])
	if !found {
		return Location{}, false
	}
	cr := codec.NewReader(buffer)
	location := Location{
		BlockNumber: cr.Varint64(),
		Position:    cr.Varint64(),
	}
	if err := cr.Finish(); nil != err {
		logger.Panicf("block: transaction: %s corrupt index: %s", id, err)
	}
	return location, true
}
