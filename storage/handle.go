// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - one prefix range of the database
type PoolHandle struct {
	name   string
	prefix byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Reader - read access to pools
type Reader interface {
	Get(pool *PoolHandle, key []byte) ([]byte, bool)
	Has(pool *PoolHandle, key []byte) bool
	Iterate(pool *PoolHandle, f func(key []byte, value []byte) error) error
	IteratePrefix(pool *PoolHandle, keyPrefix []byte, f func(key []byte, value []byte) error) error
}

// Writer - read and write access to pools
type Writer interface {
	Reader
	Put(pool *PoolHandle, key []byte, value []byte)
	Delete(pool *PoolHandle, key []byte)
}

// both leveldb.DB and leveldb.Snapshot satisfy this
type ldbReader interface {
	Get(key []byte, ro *ldb_opt.ReadOptions) ([]byte, error)
	Has(key []byte, ro *ldb_opt.ReadOptions) (bool, error)
	NewIterator(slice *ldb_util.Range, ro *ldb_opt.ReadOptions) iterator.Iterator
}

// Name - the pool field name
func (p *PoolHandle) Name() string {
	return p.name
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// RawKey - the database key of a pool key
func (p *PoolHandle) RawKey(key []byte) []byte {
	return p.prefixKey(key)
}

// StripKey - the pool key of a database key, inverse of RawKey
func (p *PoolHandle) StripKey(raw []byte) ([]byte, bool) {
	if 0 == len(raw) || p.prefix != raw[0] {
		return nil, false
	}
	key := make([]byte, len(raw)-1)
	copy(key, raw[1:])
	return key, true
}

// the key range of all pool keys starting with keyPrefix
func (p *PoolHandle) keyRange(keyPrefix []byte) *ldb_util.Range {
	return ldb_util.BytesPrefix(p.prefixKey(keyPrefix))
}

// read a value, the result is a copy
func dbGet(db ldbReader, p *PoolHandle, key []byte) ([]byte, bool) {
	value, err := db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, false
	}
	logger.PanicIfError("pool.Get", err)
	return value, true
}

func dbHas(db ldbReader, p *PoolHandle, key []byte) bool {
	found, err := db.Has(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Has", err)
	return found
}

// run a function on all elements of a pool whose key starts with keyPrefix
func dbIterate(db ldbReader, p *PoolHandle, keyPrefix []byte, f func(key []byte, value []byte) error) error {
	iter := db.NewIterator(p.keyRange(keyPrefix), nil)
	defer iter.Release()

	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		if err := f(dataKey, dataValue); nil != err {
			return err
		}
	}
	return iter.Error()
}
