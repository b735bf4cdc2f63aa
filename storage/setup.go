// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Orgs               *PoolHandle `prefix:"O"`
	Users              *PoolHandle `prefix:"U"`
	AccountUsers       *PoolHandle `prefix:"A"`
	Memberships        *PoolHandle `prefix:"M"`
	Projects           *PoolHandle `prefix:"P"`
	InitialCheckpoints *PoolHandle `prefix:"I"`
	Checkpoints        *PoolHandle `prefix:"C"`
	RetiredIds         *PoolHandle `prefix:"R"`
	Balances           *PoolHandle `prefix:"B"`
	Nonces             *PoolHandle `prefix:"N"`
	Blocks             *PoolHandle `prefix:"K"`
	BlockEvents        *PoolHandle `prefix:"E"`
	TxIndex            *PoolHandle `prefix:"T"`
	Chain              *PoolHandle `prefix:"G"`
	TestData           *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// every pool in declaration order
var allPools []*PoolHandle

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - an open registry database
type Store struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
}

func init() {
	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			panic(fmt.Sprintf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag))
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			panic(fmt.Sprintf("pool: %s duplicates prefix of: %s", fieldInfo.Name, other))
		}
		seen[prefix] = fieldInfo.Name

		p := &PoolHandle{
			name:   fieldInfo.Name,
			prefix: prefix,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
		allPools = append(allPools, p)
	}
}

// Each - run a function on every pool handle
func (pools) Each(f func(pool *PoolHandle) error) error {
	for _, p := range allPools {
		if err := f(p); nil != err {
			return err
		}
	}
	return nil
}

// Open - open up the database file
func Open(fileName string, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(fileName, opt)
	if nil != err {
		return nil, err
	}
	return newStore(db, readOnly)
}

// OpenMemory - a database that lives only as long as the Store
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newStore(db, ReadWrite)
}

func newStore(db *leveldb.DB, readOnly bool) (*Store, error) {
	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		db.Close()
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version && !readOnly {

		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	return &Store{
		db: db,
	}, nil
}

// Close - close the database
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()
	if nil == s.db {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
