// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/storage"
)

// a string data item
type stringElement struct {
	key   string
	value string
}

// collect a pool as string pairs in iteration order
func collect(t *testing.T, r storage.Reader) []stringElement {
	result := []stringElement{}
	err := r.Iterate(storage.Pool.TestData, func(key []byte, value []byte) error {
		result = append(result, stringElement{string(key), string(value)})
		return nil
	})
	require.Nil(t, err, "iterate")
	return result
}

func put(tx *storage.Transaction, key string, value string) {
	tx.Put(storage.Pool.TestData, []byte(key), []byte(value))
}

func setup(t *testing.T) *storage.Store {
	store, err := storage.OpenMemory()
	require.Nil(t, err, "open memory store")

	tx, err := store.Begin()
	require.Nil(t, err, "begin")
	put(tx, "key-one", "data-one")
	put(tx, "key-three", "data-three")
	put(tx, "key-five", "data-five")
	require.Nil(t, tx.Commit(), "commit")

	return store
}

func TestGetPutDelete(t *testing.T) {
	store := setup(t)
	defer store.Close()

	tx, err := store.Begin()
	require.Nil(t, err)
	defer tx.Abort()

	value, found := tx.Get(storage.Pool.TestData, []byte("key-one"))
	assert.True(t, found)
	assert.Equal(t, "data-one", string(value))

	_, found = tx.Get(storage.Pool.TestData, []byte("/nonexistent"))
	assert.False(t, found, "missing key found")

	// other pools do not see the key
	assert.False(t, tx.Has(storage.Pool.Orgs, []byte("key-one")))

	put(tx, "key-one", "data-one(NEW)")
	value, _ = tx.Get(storage.Pool.TestData, []byte("key-one"))
	assert.Equal(t, "data-one(NEW)", string(value))

	tx.Delete(storage.Pool.TestData, []byte("key-three"))
	assert.False(t, tx.Has(storage.Pool.TestData, []byte("key-three")))

	// removing a missing key is a no-op
	tx.Delete(storage.Pool.TestData, []byte("/nonexistent"))

	// empty values are distinct from absent ones
	tx.Put(storage.Pool.TestData, []byte("key-empty"), []byte{})
	value, found = tx.Get(storage.Pool.TestData, []byte("key-empty"))
	assert.True(t, found)
	assert.Equal(t, 0, len(value))
}

func TestIterateMergesPending(t *testing.T) {
	store := setup(t)
	defer store.Close()

	tx, err := store.Begin()
	require.Nil(t, err)
	defer tx.Abort()

	put(tx, "key-two", "data-two")
	put(tx, "key-one", "data-one(NEW)")
	tx.Delete(storage.Pool.TestData, []byte("key-three"))

	tx.Layer()
	put(tx, "key-six", "data-six")
	tx.Delete(storage.Pool.TestData, []byte("key-two"))

	expected := []stringElement{
		{"key-five", "data-five"},
		{"key-one", "data-one(NEW)"},
		{"key-six", "data-six"},
	}
	assert.Equal(t, expected, collect(t, tx), "with nested layer")

	require.Nil(t, tx.AbortLayer())
	expected = []stringElement{
		{"key-five", "data-five"},
		{"key-one", "data-one(NEW)"},
		{"key-two", "data-two"},
	}
	assert.Equal(t, expected, collect(t, tx), "after layer abort")

	// restartable
	assert.Equal(t, expected, collect(t, tx), "second iteration")
}

func TestIterateStops(t *testing.T) {
	store := setup(t)
	defer store.Close()

	tx, err := store.Begin()
	require.Nil(t, err)
	defer tx.Abort()

	stop := errors.New("stop")
	n := 0
	err = tx.Iterate(storage.Pool.TestData, func(key []byte, value []byte) error {
		n += 1
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, n)
}

func TestLayers(t *testing.T) {
	store := setup(t)
	defer store.Close()

	tx, err := store.Begin()
	require.Nil(t, err)

	assert.Equal(t, fault.NoLayerToRelease, tx.CommitLayer())
	assert.Equal(t, fault.NoLayerToRelease, tx.AbortLayer())

	tx.Layer()
	put(tx, "key-seven", "data-seven")
	tx.Layer()
	put(tx, "key-eight", "data-eight")
	assert.Equal(t, 2, tx.Depth())

	assert.Equal(t, fault.LayersStillOpen, tx.Commit())

	require.Nil(t, tx.AbortLayer())
	require.Nil(t, tx.CommitLayer())
	assert.Equal(t, 0, tx.Depth())
	require.Nil(t, tx.Commit())

	assert.Equal(t, fault.TransactionFinished, tx.Commit())
	tx.Abort()

	snapshot, err := store.Snapshot()
	require.Nil(t, err)
	defer snapshot.Release()
	assert.True(t, snapshot.Has(storage.Pool.TestData, []byte("key-seven")))
	assert.False(t, snapshot.Has(storage.Pool.TestData, []byte("key-eight")))
}

func TestSingleWriter(t *testing.T) {
	store := setup(t)
	defer store.Close()

	tx, err := store.Begin()
	require.Nil(t, err)

	_, err = store.Begin()
	assert.Equal(t, fault.TransactionInUse, err)

	tx.Abort()

	tx, err = store.Begin()
	assert.Nil(t, err, "begin after abort")
	tx.Abort()
}

func TestSnapshotIsolation(t *testing.T) {
	store := setup(t)
	defer store.Close()

	before, err := store.Snapshot()
	require.Nil(t, err)
	defer before.Release()

	tx, err := store.Begin()
	require.Nil(t, err)
	put(tx, "key-four", "data-four")

	during, err := store.Snapshot()
	require.Nil(t, err)
	defer during.Release()
	assert.False(t, during.Has(storage.Pool.TestData, []byte("key-four")), "uncommitted write visible")

	require.Nil(t, tx.Commit())

	assert.False(t, before.Has(storage.Pool.TestData, []byte("key-four")), "snapshot moved")

	after, err := store.Snapshot()
	require.Nil(t, err)
	defer after.Release()
	value, found := after.Get(storage.Pool.TestData, []byte("key-four"))
	assert.True(t, found)
	assert.Equal(t, "data-four", string(value))
	assert.Equal(t, 4, len(collect(t, after)))
}

func TestReopen(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "test.leveldb")

	store, err := storage.Open(fileName, storage.ReadWrite)
	require.Nil(t, err, "create")
	tx, err := store.Begin()
	require.Nil(t, err)
	put(tx, "persistent", "yes")
	require.Nil(t, tx.Commit())
	require.Nil(t, store.Close())

	_, err = store.Begin()
	assert.Equal(t, fault.DatabaseIsNotSet, err)

	store, err = storage.Open(fileName, storage.ReadOnly)
	require.Nil(t, err, "reopen")
	defer store.Close()

	snapshot, err := store.Snapshot()
	require.Nil(t, err)
	defer snapshot.Release()
	value, found := snapshot.Get(storage.Pool.TestData, []byte("persistent"))
	assert.True(t, found)
	assert.Equal(t, "yes", string(value))
}

func TestIteratePrefix(t *testing.T) {
	store := setup(t)
	defer store.Close()

	tx, err := store.Begin()
	require.Nil(t, err)
	defer tx.Abort()

	put(tx, "key-four", "data-four")
	put(tx, "other", "data-other")

	keys := []string{}
	err = tx.IteratePrefix(storage.Pool.TestData, []byte("key-f"), func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	require.Nil(t, err)
	assert.Equal(t, []string{"key-five", "key-four"}, keys)
}

func TestRawKey(t *testing.T) {
	raw := storage.Pool.Orgs.RawKey([]byte("acme"))
	assert.Equal(t, []byte("Oacme"), raw)

	key, ok := storage.Pool.Orgs.StripKey(raw)
	assert.True(t, ok)
	assert.Equal(t, []byte("acme"), key)

	_, ok = storage.Pool.Users.StripKey(raw)
	assert.False(t, ok, "wrong pool")
	assert.Equal(t, "Orgs", storage.Pool.Orgs.Name())
}
