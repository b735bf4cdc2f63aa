// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/currency"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/genesis"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
	tr "github.com/bitmark-inc/registryd/transactionrecord"
)

const testingDirName = "testing"

var (
	aliceKey    = account.KeyPairFromString("Alice")
	bobKey      = account.KeyPairFromString("Bob")
	eveKey      = account.KeyPairFromString("Eve")
	blockAuthor = account.KeyPairFromString("Charlie").Account()
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

type chainFixture struct {
	t        *testing.T
	store    *storage.Store
	executor *block.Executor
	nonces   map[account.Account]uint64
}

func newChain(t *testing.T) *chainFixture {
	store, err := storage.OpenMemory()
	require.Nil(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = genesis.Initialise(store, genesis.DevelopmentParameters(chain.Testing, 0))
	require.Nil(t, err)

	executor, err := block.NewExecutor(logger.New("block"), store)
	require.Nil(t, err)

	return &chainFixture{
		t:        t,
		store:    store,
		executor: executor,
		nonces:   map[account.Account]uint64{},
	}
}

// sign with the next nonce of the key
func (c *chainFixture) sign(keyPair *account.KeyPair, fee uint64, message tr.Message) tr.Packed {
	a := keyPair.Account()
	tx := &tr.Transaction{
		Message:     message,
		Nonce:       c.nonces[a],
		GenesisHash: c.executor.GenesisHash(),
		Fee:         fee,
	}
	c.nonces[a] += 1
	tx.Sign(keyPair)
	return tx.Pack()
}

func (c *chainFixture) apply(transactions ...tr.Packed) (*block.Block, []block.Rejected) {
	b, rejected, err := c.executor.ApplyBlock(&blockAuthor, 1, transactions)
	require.Nil(c.t, err)
	return b, rejected
}

func (c *chainFixture) balance(a account.Account) uint64 {
	snapshot, err := c.store.Snapshot()
	require.Nil(c.t, err)
	defer snapshot.Release()
	return currency.FreeBalance(snapshot, a)
}

func (c *chainFixture) events(number uint64) []event.Record {
	snapshot, err := c.store.Snapshot()
	require.Nil(c.t, err)
	defer snapshot.Release()
	records, err := block.Events(snapshot, number)
	require.Nil(c.t, err)
	return records
}

func TestApplyBlock(t *testing.T) {
	c := newChain(t)

	b, rejected := c.apply(
		c.sign(aliceKey, 10, &tr.RegisterUser{UserId: "alice"}),
		c.sign(aliceKey, 10, &tr.RegisterOrg{OrgId: "acme"}),
		c.sign(bobKey, 10, &tr.RegisterOrg{OrgId: "bobs"}),
	)
	assert.Equal(t, 0, len(rejected))
	assert.Equal(t, uint64(1), b.Number)
	assert.Equal(t, 3, len(b.Transactions))
	assert.Equal(t, block.TransactionsHash(b.Transactions), b.TransactionsHash)

	records := c.events(1)
	expected := []event.Record{
		{TxIndex: 0, Event: &event.UserRegistered{UserId: "alice"}},
		{TxIndex: 0, Event: &event.ExtrinsicSuccess{}},
		{TxIndex: 1, Event: &event.OrgRegistered{OrgId: "acme"}},
		{TxIndex: 1, Event: &event.ExtrinsicSuccess{}},
		{TxIndex: 2, Event: event.Failed(fault.AuthorHasNoAssociatedUser)},
	}
	assert.Equal(t, expected, records)

	// fee charged although the message failed
	assert.Equal(t, genesis.DevelopmentEndowment-10, c.balance(bobKey.Account()))
	assert.Equal(t, genesis.DevelopmentEndowment-20, c.balance(aliceKey.Account()))
	assert.Equal(t, uint64(30), c.balance(blockAuthor), "no burn below 50")

	snapshot, err := c.store.Snapshot()
	require.Nil(t, err)
	defer snapshot.Release()

	assert.Equal(t, uint64(2), state.Nonce(snapshot, aliceKey.Account()))
	assert.Equal(t, uint64(1), state.Nonce(snapshot, bobKey.Account()))

	location, found := block.TransactionLocation(snapshot, b.Transactions[2].Id())
	assert.True(t, found)
	assert.Equal(t, block.Location{BlockNumber: 1, Position: 2}, location)

	parent, err := block.Get(snapshot, 0)
	require.Nil(t, err)
	assert.Equal(t, parent.Hash(), b.Parent)
	assert.Equal(t, block.Randomness(parent.Hash(), 1), b.Randomness)
}

func TestRejections(t *testing.T) {
	c := newChain(t)

	good := c.sign(aliceKey, 1, &tr.Transfer{Recipient: eveKey.Account(), Balance: 5})

	wrongChain := &tr.Transaction{
		Message:     &tr.Transfer{Recipient: eveKey.Account(), Balance: 5},
		GenesisHash: digest.NewDigest([]byte("elsewhere")),
		Fee:         1,
	}
	wrongChain.Sign(bobKey)

	badSignature := &tr.Transaction{
		Message:     &tr.Transfer{Recipient: eveKey.Account(), Balance: 5},
		GenesisHash: c.executor.GenesisHash(),
		Fee:         1,
	}
	badSignature.Sign(bobKey)
	badSignature.Nonce = 0
	badSignature.Fee = 2

	lowFee := c.sign(bobKey, 9, &tr.RegisterUser{UserId: "bob"})
	future := &tr.Transaction{
		Message:     &tr.Transfer{Recipient: eveKey.Account(), Balance: 5},
		Nonce:       7,
		GenesisHash: c.executor.GenesisHash(),
		Fee:         1,
	}
	future.Sign(bobKey)

	// eve has no balance for the fee until the good transfer
	broke := c.sign(eveKey, 1, &tr.Transfer{Recipient: bobKey.Account(), Balance: 0})

	b, rejected := c.apply(
		broke,
		good,
		good,
		wrongChain.Pack(),
		badSignature.Pack(),
		lowFee,
		future.Pack(),
		tr.Packed{0x7f},
	)
	assert.Equal(t, []tr.Packed{good}, b.Transactions)

	errs := []error{}
	for _, r := range rejected {
		errs = append(errs, r.Err)
	}
	assert.Equal(t, []error{
		fault.InsufficientBalance,
		fault.TransactionDuplicate,
		fault.WrongGenesisHash,
		fault.InvalidSignature,
		fault.InsufficientFee,
		fault.NonceTooHigh,
		fault.UnknownMessageTag,
	}, errs)

	// the good transfer only: eve got 5 and nothing else happened
	assert.Equal(t, uint64(5), c.balance(eveKey.Account()))

	snapshot, err := c.store.Snapshot()
	require.Nil(t, err)
	defer snapshot.Release()
	assert.Equal(t, uint64(0), state.Nonce(snapshot, eveKey.Account()), "rejected fee payment rolls back the nonce")

	// replay in a later block
	_, rejected = c.apply(good)
	require.Equal(t, 1, len(rejected))
	assert.Equal(t, fault.TransactionDuplicate, rejected[0].Err)
}

func TestValidate(t *testing.T) {
	c := newChain(t)

	first := c.sign(aliceKey, 10, &tr.RegisterUser{UserId: "alice"})
	second := c.sign(aliceKey, 10, &tr.RegisterOrg{OrgId: "acme"})

	_, err := c.executor.Validate(first)
	assert.Nil(t, err)
	_, err = c.executor.Validate(second)
	assert.Nil(t, err, "a later nonce may wait")

	c.apply(first)
	_, err = c.executor.Validate(first)
	assert.Equal(t, fault.TransactionDuplicate, err)

	_, err = c.executor.Validate(c.sign(eveKey, 1, &tr.RegisterUser{UserId: "eve"}))
	assert.Equal(t, fault.InsufficientFee, err)
	_, err = c.executor.Validate(c.sign(eveKey, 10, &tr.RegisterUser{UserId: "eve"}))
	assert.Equal(t, fault.InsufficientBalance, err)
}

func TestOrgPaysForMembers(t *testing.T) {
	c := newChain(t)

	c.apply(
		c.sign(aliceKey, 10, &tr.RegisterUser{UserId: "alice"}),
		c.sign(aliceKey, 10, &tr.RegisterOrg{OrgId: "acme"}),
	)

	snapshot, err := c.store.Snapshot()
	require.Nil(t, err)
	org, found := state.GetOrg(snapshot, "acme")
	snapshot.Release()
	require.True(t, found)

	c.apply(c.sign(bobKey, 1, &tr.Transfer{Recipient: org.Account, Balance: 1000}))
	assert.Equal(t, uint64(1000), c.balance(org.Account))

	aliceBefore := c.balance(aliceKey.Account())
	c.apply(c.sign(aliceKey, 100, &tr.RegisterProject{ProjectName: "app", ProjectDomain: identifier.Org("acme")}))
	assert.Equal(t, uint64(900), c.balance(org.Account))
	assert.Equal(t, aliceBefore, c.balance(aliceKey.Account()))

	// a non-member pays for itself and the failed transfer moves nothing
	bobBefore := c.balance(bobKey.Account())
	c.apply(c.sign(bobKey, 100, &tr.TransferFromOrg{OrgId: "acme", Recipient: bobKey.Account(), Value: 500}))
	assert.Equal(t, uint64(900), c.balance(org.Account))
	assert.Equal(t, bobBefore-100, c.balance(bobKey.Account()))

	records := c.events(4)
	assert.Equal(t, []event.Record{
		{TxIndex: 0, Event: event.Failed(fault.InsufficientSenderPermissions)},
	}, records)
}

func TestBlockPack(t *testing.T) {
	author := blockAuthor
	b := &block.Block{
		Header: block.Header{
			Number:     9,
			Parent:     digest.NewDigest([]byte("p")),
			Author:     &author,
			Timestamp:  1234,
			Randomness: digest.NewDigest([]byte("r")),
		},
		Transactions: []tr.Packed{{1, 2, 3}, {4}},
	}
	back, err := block.Unpack(b.Pack())
	require.Nil(t, err)
	assert.Equal(t, b, back)

	b.Author = nil
	back, err = block.Unpack(b.Pack())
	require.Nil(t, err)
	assert.Nil(t, back.Author)
	assert.NotEqual(t, b.Hash(), (&block.Header{Number: 9}).Hash())
}
