// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/registryd/fault"
)

// Transaction - the single writer of a Store
//
// writes are held in a stack of layers; the bottom layer is written
// to the database as one batch on Commit and the upper layers are
// nested rollback boundaries
type Transaction struct {
	store  *Store
	layers []Cache
	done   bool
}

// Begin - start the write transaction
//
// only one transaction may be in progress
func (s *Store) Begin() (*Transaction, error) {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return nil, fault.DatabaseIsNotSet
	}
	if s.inUse {
		return nil, fault.TransactionInUse
	}
	s.inUse = true

	return &Transaction{
		store:  s,
		layers: []Cache{newCache()},
	}, nil
}

// Layer - open a nested rollback boundary
func (tx *Transaction) Layer() {
	tx.layers = append(tx.layers, newCache())
}

// Depth - number of open nested layers
func (tx *Transaction) Depth() int {
	return len(tx.layers) - 1
}

// CommitLayer - fold the top layer into the one below it
func (tx *Transaction) CommitLayer() error {
	n := len(tx.layers)
	if n < 2 {
		return fault.NoLayerToRelease
	}
	top := tx.layers[n-1]
	below := tx.layers[n-2]
	for k, d := range top.Items() {
		below.Set(d.op, k, d.value)
	}
	tx.layers = tx.layers[:n-1]
	return nil
}

// AbortLayer - discard the writes of the top layer
func (tx *Transaction) AbortLayer() error {
	n := len(tx.layers)
	if n < 2 {
		return fault.NoLayerToRelease
	}
	tx.layers[n-1].Clear()
	tx.layers = tx.layers[:n-1]
	return nil
}

// Commit - write all pending data as a single batch
func (tx *Transaction) Commit() error {
	if tx.done {
		return fault.TransactionFinished
	}
	if len(tx.layers) > 1 {
		return fault.LayersStillOpen
	}

	batch := new(leveldb.Batch)
	for k, d := range tx.layers[0].Items() {
		switch d.op {
		case dbPut:
			batch.Put([]byte(k), d.value)
		case dbDelete:
			batch.Delete([]byte(k))
		}
	}

	err := tx.store.db.Write(batch, nil)
	tx.finish()
	return err
}

// Abort - discard everything
//
// safe to call after Commit, so it may be deferred
func (tx *Transaction) Abort() {
	if tx.done {
		return
	}
	tx.finish()
}

func (tx *Transaction) finish() {
	for _, c := range tx.layers {
		c.Clear()
	}
	tx.layers = nil
	tx.done = true

	tx.store.Lock()
	tx.store.inUse = false
	tx.store.Unlock()
}

// Put - store a key/value bytes pair
func (tx *Transaction) Put(pool *PoolHandle, key []byte, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	tx.top().Set(dbPut, string(pool.prefixKey(key)), v)
}

// Delete - remove a key, a missing key is not an error
func (tx *Transaction) Delete(pool *PoolHandle, key []byte) {
	tx.top().Set(dbDelete, string(pool.prefixKey(key)), nil)
}

// Get - read a value, pending writes take precedence
func (tx *Transaction) Get(pool *PoolHandle, key []byte) ([]byte, bool) {
	k := string(pool.prefixKey(key))
	for i := len(tx.layers) - 1; i >= 0; i -= 1 {
		if d, ok := tx.layers[i].Get(k); ok {
			if dbDelete == d.op {
				return nil, false
			}
			v := make([]byte, len(d.value))
			copy(v, d.value)
			return v, true
		}
	}
	return dbGet(tx.store.db, pool, key)
}

// Has - check if a key exists
func (tx *Transaction) Has(pool *PoolHandle, key []byte) bool {
	k := string(pool.prefixKey(key))
	for i := len(tx.layers) - 1; i >= 0; i -= 1 {
		if d, ok := tx.layers[i].Get(k); ok {
			return dbPut == d.op
		}
	}
	return dbHas(tx.store.db, pool, key)
}

// Iterate - run a function on every element of a pool
//
// committed data is merged with all pending layers, in key order
func (tx *Transaction) Iterate(pool *PoolHandle, f func(key []byte, value []byte) error) error {
	return tx.IteratePrefix(pool, nil, f)
}

// IteratePrefix - run a function on the elements whose key starts with keyPrefix
func (tx *Transaction) IteratePrefix(pool *PoolHandle, keyPrefix []byte, f func(key []byte, value []byte) error) error {

	rawPrefix := string(pool.prefixKey(keyPrefix))

	// pending writes in range, upper layers override lower
	pending := make(map[string]cacheData)
	for _, c := range tx.layers {
		for k, d := range c.Items() {
			if strings.HasPrefix(k, rawPrefix) {
				pending[k] = d
			}
		}
	}
	keys := make([]string, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	emit := func(key string, value []byte) error {
		dataValue := make([]byte, len(value))
		copy(dataValue, value)
		return f([]byte(key[1:]), dataValue)
	}

	iter := tx.store.db.NewIterator(pool.keyRange(keyPrefix), nil)
	defer iter.Release()

	i := 0
	dbValid := iter.Next()
	for dbValid || i < len(keys) {

		if dbValid {
			dbKey := string(iter.Key())

			if i >= len(keys) || dbKey < keys[i] {
				value := iter.Value()
				if err := emit(dbKey, value); nil != err {
					return err
				}
				dbValid = iter.Next()
				continue
			}

			// pending entry shadows the stored one
			if dbKey == keys[i] {
				dbValid = iter.Next()
			}
		}

		d := pending[keys[i]]
		if dbPut == d.op {
			if err := emit(keys[i], d.value); nil != err {
				return err
			}
		}
		i += 1
	}
	return iter.Error()
}

func (tx *Transaction) top() Cache {
	if tx.done {
		panic("storage: write to finished transaction")
	}
	return tx.layers[len(tx.layers)-1]
}
