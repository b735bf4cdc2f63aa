// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fees_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/currency"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/fees"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

var (
	alice       = account.KeyPairFromString("Alice").Account()
	bob         = account.KeyPairFromString("Bob").Account()
	blockAuthor = account.KeyPairFromString("Charlie").Account()
	orgAcc      = account.KeyPairFromString("acme-org").Account()
)

// alice is a user and sole member of acme, bob has no user
func setup(t *testing.T) (*storage.Store, *storage.Transaction) {
	store, err := storage.OpenMemory()
	require.Nil(t, err)

	tx, err := store.Begin()
	require.Nil(t, err)

	state.PutUser(tx, "alice", &state.User{Account: alice})
	state.PutOrg(tx, "acme", &state.Org{Account: orgAcc, Members: []identifier.Id{"alice"}})
	require.Nil(t, currency.Mint(tx, alice, 1000))
	require.Nil(t, currency.Mint(tx, bob, 1000))
	require.Nil(t, currency.Mint(tx, orgAcc, 1000))

	return store, tx
}

func TestMinimum(t *testing.T) {
	assert.Equal(t, fault.InsufficientFee, fees.CheckMinimum(&transactionrecord.RegisterOrg{OrgId: "acme"}, 9))
	assert.Nil(t, fees.CheckMinimum(&transactionrecord.RegisterOrg{OrgId: "acme"}, 10))
	assert.Equal(t, fault.InsufficientFee, fees.CheckMinimum(&transactionrecord.RegisterUser{UserId: "bob"}, 1))
	assert.Equal(t, fault.InsufficientFee, fees.CheckMinimum(&transactionrecord.Transfer{Recipient: bob, Balance: 1}, 0))
	assert.Nil(t, fees.CheckMinimum(&transactionrecord.Transfer{Recipient: bob, Balance: 1}, 1))
}

func TestSplit(t *testing.T) {
	burned, reward := fees.Split(1000)
	assert.Equal(t, uint64(10), burned)
	assert.Equal(t, uint64(990), reward)

	tests := []struct {
		fee    uint64
		burned uint64
	}{
		{0, 0},
		{1, 0},
		{10, 0},
		{49, 0},
		{50, 1},
		{51, 1},
		{99, 1},
		{100, 1},
		{149, 1},
		{150, 2},
		{199, 2},
	}
	for _, test := range tests {
		burned, reward = fees.Split(test.fee)
		assert.Equal(t, test.burned, burned, "fee: %d", test.fee)
		assert.Equal(t, test.fee-test.burned, reward, "fee: %d", test.fee)
	}

	burned, reward = fees.Split(math.MaxUint64)
	assert.Equal(t, uint64(math.MaxUint64), burned+reward)
}

func TestPayerAccount(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	inOrg := identifier.Org("acme")
	inUser := identifier.User("alice")

	tests := []struct {
		author  account.Account
		message transactionrecord.Message
		payer   account.Account
	}{
		{alice, &transactionrecord.RegisterProject{ProjectName: "app", ProjectDomain: inOrg}, orgAcc},
		{alice, &transactionrecord.RegisterProject{ProjectName: "app", ProjectDomain: inUser}, alice},
		{alice, &transactionrecord.SetCheckpoint{ProjectName: "app", ProjectDomain: inOrg}, orgAcc},
		{alice, &transactionrecord.UnregisterOrg{OrgId: "acme"}, orgAcc},
		{alice, &transactionrecord.TransferFromOrg{OrgId: "acme", Recipient: bob, Value: 1}, orgAcc},
		{alice, &transactionrecord.RegisterMember{OrgId: "acme", UserId: "bob"}, orgAcc},
		{alice, &transactionrecord.RegisterOrg{OrgId: "other"}, alice},
		{alice, &transactionrecord.Transfer{Recipient: bob, Balance: 1}, alice},
		{alice, &transactionrecord.CreateCheckpoint{ProjectHash: digest.NewDigest(nil)}, alice},
		{alice, &transactionrecord.UnregisterOrg{OrgId: "missing"}, alice},

		// not a member
		{bob, &transactionrecord.TransferFromOrg{OrgId: "acme", Recipient: bob, Value: 1}, bob},
		{bob, &transactionrecord.RegisterProject{ProjectName: "app", ProjectDomain: inOrg}, bob},
	}

	for i, item := range tests {
		assert.Equal(t, item.payer, fees.PayerAccount(tx, item.author, item.message), "%d: %#v", i, item.message)
	}
}

func TestPay(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	issuance := state.TotalIssuance(tx)

	payment, err := fees.Pay(tx, bob, 100, &transactionrecord.Transfer{Recipient: alice, Balance: 1}, &blockAuthor)
	require.Nil(t, err)
	assert.Equal(t, bob, payment.Payer)
	assert.Equal(t, uint64(900), currency.FreeBalance(tx, bob))
	assert.Equal(t, uint64(99), currency.FreeBalance(tx, blockAuthor))
	assert.Equal(t, issuance-1, state.TotalIssuance(tx))

	// org pays for its member
	payment, err = fees.Pay(tx, alice, 100, &transactionrecord.TransferFromOrg{OrgId: "acme", Recipient: bob, Value: 1}, &blockAuthor)
	require.Nil(t, err)
	assert.Equal(t, orgAcc, payment.Payer)
	assert.Equal(t, uint64(900), currency.FreeBalance(tx, orgAcc))
	assert.Equal(t, uint64(1000), currency.FreeBalance(tx, alice))
}

func TestPayWithoutBlockAuthor(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	issuance := state.TotalIssuance(tx)

	_, err := fees.Pay(tx, bob, 100, &transactionrecord.Transfer{Recipient: alice, Balance: 1}, nil)
	require.Nil(t, err)
	assert.Equal(t, uint64(900), currency.FreeBalance(tx, bob))
	assert.Equal(t, issuance-100, state.TotalIssuance(tx))
}

func TestPayInsufficient(t *testing.T) {
	store, tx := setup(t)
	defer store.Close()
	defer tx.Abort()

	_, err := fees.Pay(tx, bob, 1001, &transactionrecord.Transfer{Recipient: alice, Balance: 1}, &blockAuthor)
	assert.Equal(t, fault.InsufficientBalance, err)
	assert.Equal(t, uint64(1000), currency.FreeBalance(tx, bob))
	assert.Equal(t, uint64(0), currency.FreeBalance(tx, blockAuthor))
}
