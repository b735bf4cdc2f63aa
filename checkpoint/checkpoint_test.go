// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package checkpoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bitmark-inc/registryd/checkpoint"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
)

func setup(t *testing.T) (*storage.Store, *storage.Transaction) {
	store, err := storage.OpenMemory()
	require.Nil(t, err)
	tx, err := store.Begin()
	require.Nil(t, err)
	return store, tx
}

func hash(s string) digest.Digest {
	return digest.NewDigest([]byte(s))
}

func count(t *testing.T, r storage.Reader) int {
	n := 0
	err := state.IterateCheckpoints(r, func(id digest.Digest, c *state.Checkpoint) error {
		n += 1
		return nil
	})
	require.Nil(t, err)
	return n
}

func TestCreate(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	c0, err := checkpoint.Create(tx, nil, hash("s0"))
	require.Nil(t, err)
	assert.Equal(t, checkpoint.Id(nil, hash("s0")), c0)

	c1, err := checkpoint.Create(tx, &c0, hash("s1"))
	require.Nil(t, err)
	assert.NotEqual(t, c0, c1)

	stored, found := state.GetCheckpoint(tx, c1)
	require.True(t, found)
	assert.Equal(t, c0, *stored.Parent)
	assert.Equal(t, hash("s1"), stored.Hash)

	// same hash different parent is a different checkpoint
	assert.NotEqual(t, checkpoint.Id(nil, hash("s1")), c1)

	missing := hash("missing")
	_, err = checkpoint.Create(tx, &missing, hash("s2"))
	assert.Equal(t, fault.InexistentCheckpointId, err)
	assert.Equal(t, 2, count(t, tx), "failed create stored something")
}

func TestCreateIdempotent(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	rapid.Check(t, func(rt *rapid.T) {
		data := rapid.SliceOf(rapid.Byte()).Draw(rt, "state")
		before := count(t, tx)

		first, err := checkpoint.Create(tx, nil, digest.NewDigest(data))
		if nil != err {
			rt.Fatalf("create: %v", err)
		}
		afterFirst := count(t, tx)

		second, err := checkpoint.Create(tx, nil, digest.NewDigest(data))
		if nil != err {
			rt.Fatalf("create again: %v", err)
		}
		if first != second {
			rt.Fatalf("ids differ: %s %s", first, second)
		}
		if afterFirst != count(t, tx) || afterFirst > before+1 {
			rt.Fatalf("duplicate entry: %d -> %d -> %d", before, afterFirst, count(t, tx))
		}
	})
}

func TestDescendsFrom(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	// C0 -> C1 -> C2 and C1 -> C2'
	c0, _ := checkpoint.Create(tx, nil, hash("c0"))
	c1, _ := checkpoint.Create(tx, &c0, hash("c1"))
	c2, _ := checkpoint.Create(tx, &c1, hash("c2"))
	fork, _ := checkpoint.Create(tx, &c1, hash("c2'"))
	d0, _ := checkpoint.Create(tx, nil, hash("d0"))

	for _, c := range []digest.Digest{c0, c1, c2, fork, d0} {
		assert.True(t, checkpoint.DescendsFrom(tx, c, c), "reflexive: %s", c)
	}

	assert.True(t, checkpoint.DescendsFrom(tx, c2, c0))
	assert.True(t, checkpoint.DescendsFrom(tx, fork, c0))
	assert.True(t, checkpoint.DescendsFrom(tx, fork, c1))
	assert.False(t, checkpoint.DescendsFrom(tx, fork, c2), "sibling")
	assert.False(t, checkpoint.DescendsFrom(tx, c0, c2), "reversed")
	assert.False(t, checkpoint.DescendsFrom(tx, d0, c0), "unrelated")
	assert.False(t, checkpoint.DescendsFrom(tx, hash("missing"), c0), "missing")
}

func TestBrokenChain(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	// a checkpoint whose parent was never stored
	orphanParent := hash("gone")
	orphan := hash("orphan")
	state.PutCheckpoint(tx, orphan, &state.Checkpoint{Parent: &orphanParent, Hash: hash("x")})

	assert.True(t, checkpoint.DescendsFrom(tx, orphan, orphanParent), "direct parent is still reached")
	assert.False(t, checkpoint.DescendsFrom(tx, orphan, hash("beyond")))
}
