// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency_test

import (
	"math"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/currency"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
)

const testingDirName = "testing"

var (
	alice = account.KeyPairFromString("Alice").Account()
	bob   = account.KeyPairFromString("Bob").Account()
)

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

func setup(t *testing.T) (*storage.Store, *storage.Transaction) {
	store, err := storage.OpenMemory()
	require.Nil(t, err)
	tx, err := store.Begin()
	require.Nil(t, err)
	require.Nil(t, currency.Mint(tx, alice, 1000))
	return store, tx
}

func TestTransfer(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	assert.Nil(t, currency.Transfer(tx, alice, bob, 400))
	assert.Equal(t, uint64(600), currency.FreeBalance(tx, alice))
	assert.Equal(t, uint64(400), currency.FreeBalance(tx, bob))

	assert.Equal(t, fault.InsufficientBalance, currency.Transfer(tx, bob, alice, 401))
	assert.Equal(t, uint64(600), currency.FreeBalance(tx, alice), "failed transfer changed sender")
	assert.Equal(t, uint64(400), currency.FreeBalance(tx, bob), "failed transfer changed recipient")

	assert.Nil(t, currency.Transfer(tx, bob, bob, 400), "self transfer")
	assert.Equal(t, uint64(400), currency.FreeBalance(tx, bob))
	assert.Equal(t, fault.InsufficientBalance, currency.Transfer(tx, bob, bob, 401))

	assert.Equal(t, uint64(1000), state.TotalIssuance(tx), "transfers preserve issuance")
}

func TestWithdrawDeposit(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	assert.Equal(t, fault.InsufficientBalance, currency.Withdraw(tx, alice, 1001))
	assert.Equal(t, uint64(1000), currency.FreeBalance(tx, alice))

	assert.Nil(t, currency.Withdraw(tx, alice, 1000))
	assert.Equal(t, uint64(0), currency.FreeBalance(tx, alice))

	assert.Nil(t, currency.Deposit(tx, bob, math.MaxUint64))
	assert.Equal(t, fault.BalanceOverflow, currency.Deposit(tx, bob, 1))
	assert.Equal(t, uint64(math.MaxUint64), currency.FreeBalance(tx, bob))

	assert.Nil(t, currency.Transfer(tx, alice, bob, 0), "zero transfer to a full account")

	require.Nil(t, currency.Deposit(tx, alice, 5))
	assert.Equal(t, fault.BalanceOverflow, currency.Transfer(tx, alice, bob, 5))
	assert.Equal(t, uint64(5), currency.FreeBalance(tx, alice), "overflowing transfer changed sender")
}

func TestBurn(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	require.Nil(t, currency.Withdraw(tx, alice, 10))
	currency.Burn(tx, 10)
	assert.Equal(t, uint64(990), state.TotalIssuance(tx))

	assert.Panics(t, func() { currency.Burn(tx, 991) }, "burn above issuance")
	assert.Equal(t, uint64(990), state.TotalIssuance(tx))

	currency.Burn(tx, 990)
	assert.Equal(t, uint64(0), state.TotalIssuance(tx))
}
