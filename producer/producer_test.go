// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package producer_test

import (
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/background"
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/genesis"
	"github.com/bitmark-inc/registryd/producer"
	"github.com/bitmark-inc/registryd/reservoir"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
	tr "github.com/bitmark-inc/registryd/transactionrecord"
)

const testingDirName = "testing"

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	os.Mkdir(testingDirName, 0o700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})

	result := m.Run()

	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(result)
}

func setup(t *testing.T, interval time.Duration) (*storage.Store, *block.Executor, *reservoir.Reservoir, *producer.Producer) {
	store, err := storage.OpenMemory()
	require.Nil(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = genesis.Initialise(store, genesis.DevelopmentParameters(chain.Local, 0))
	require.Nil(t, err)

	executor, err := block.NewExecutor(logger.New("block"), store)
	require.Nil(t, err)
	pool := reservoir.New(logger.New("reservoir"), executor, time.Hour)
	author := account.KeyPairFromString("Charlie").Account()
	p := producer.New(logger.New("producer"), executor, pool, &author, interval)
	return store, executor, pool, p
}

func sign(executor *block.Executor, name string, nonce uint64, message tr.Message) tr.Packed {
	tx := &tr.Transaction{
		Message:     message,
		Nonce:       nonce,
		GenesisHash: executor.GenesisHash(),
		Fee:         10,
	}
	tx.Sign(account.KeyPairFromString(name))
	return tx.Pack()
}

func TestProduce(t *testing.T) {
	store, executor, pool, p := setup(t, time.Hour)

	b, err := p.Produce()
	assert.Nil(t, err)
	assert.Nil(t, b, "nothing pending")

	// stored out of order
	second := sign(executor, "Alice", 1, &tr.RegisterOrg{OrgId: "acme"})
	first := sign(executor, "Alice", 0, &tr.RegisterUser{UserId: "alice"})
	gap := sign(executor, "Bob", 5, &tr.RegisterUser{UserId: "bob"})
	for _, packed := range []tr.Packed{second, first, gap} {
		_, err := pool.Store(packed)
		require.Nil(t, err)
	}

	b, err = p.Produce()
	require.Nil(t, err)
	assert.Equal(t, []tr.Packed{first, second}, b.Transactions)

	assert.Equal(t, 1, pool.Count(), "nonce gap stays pending")
	status, _ := pool.Status(gap.Id())
	assert.Equal(t, reservoir.StatusPending, status)

	snapshot, err := store.Snapshot()
	require.Nil(t, err)
	defer snapshot.Release()
	_, found := state.GetOrg(snapshot, "acme")
	assert.True(t, found)
}

func TestRunInBackground(t *testing.T) {
	store, executor, pool, p := setup(t, 10*time.Millisecond)

	_, err := pool.Store(sign(executor, "Bob", 0, &tr.RegisterUser{UserId: "bob"}))
	require.Nil(t, err)

	processes := background.Start(background.Processes{p}, nil)
	deadline := time.Now().Add(2 * time.Second)
	for pool.Count() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	processes.Stop()

	snapshot, err := store.Snapshot()
	require.Nil(t, err)
	defer snapshot.Release()
	_, found := state.GetUser(snapshot, "bob")
	assert.True(t, found)
}

func TestSetAuthor(t *testing.T) {
	store, executor, pool, p := setup(t, time.Hour)

	dave := account.KeyPairFromString("Dave").Account()
	p.SetAuthor(&dave)
	assert.Equal(t, &dave, p.Author())

	_, err := pool.Store(sign(executor, "Alice", 0, &tr.RegisterUser{UserId: "alice"}))
	require.Nil(t, err)
	_, err = p.Produce()
	require.Nil(t, err)

	snapshot, err := store.Snapshot()
	require.Nil(t, err)
	defer snapshot.Release()
	assert.NotZero(t, state.FreeBalance(snapshot, dave), "reward paid to new author")

	p.SetAuthor(nil)
	assert.Nil(t, p.Author())
}
