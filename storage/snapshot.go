// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/registryd/fault"
)

// Snapshot - consistent read only view of committed data
//
// it never observes writes of a transaction that is still in progress
type Snapshot struct {
	snapshot *leveldb.Snapshot
}

// Snapshot - pin the current committed state
//
// must be released after use
func (s *Store) Snapshot() (*Snapshot, error) {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return nil, fault.DatabaseIsNotSet
	}
	snapshot, err := s.db.GetSnapshot()
	if nil != err {
		return nil, err
	}
	return &Snapshot{snapshot: snapshot}, nil
}

// Release - free the snapshot
func (s *Snapshot) Release() {
	s.snapshot.Release()
}

// Get - read a value
func (s *Snapshot) Get(pool *PoolHandle, key []byte) ([]byte, bool) {
	return dbGet(s.snapshot, pool, key)
}

// Has - check if a key exists
func (s *Snapshot) Has(pool *PoolHandle, key []byte) bool {
	return dbHas(s.snapshot, pool, key)
}

// Iterate - run a function on every element of a pool
func (s *Snapshot) Iterate(pool *PoolHandle, f func(key []byte, value []byte) error) error {
	return dbIterate(s.snapshot, pool, nil, f)
}

// IteratePrefix - run a function on the elements whose key starts with keyPrefix
func (s *Snapshot) IteratePrefix(pool *PoolHandle, keyPrefix []byte, f func(key []byte, value []byte) error) error {
	return dbIterate(s.snapshot, pool, keyPrefix, f)
}
