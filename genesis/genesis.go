// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - block zero and the initial balances
package genesis

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/currency"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
)

// BlockNumber - the number of the genesis block
const BlockNumber = 0

// DevelopmentEndowment - balance of each development account
const DevelopmentEndowment = uint64(1) << 60

// names of the development accounts
var developmentAccounts = []string{"Alice", "Bob"}

// Endowment - an initial balance
type Endowment struct {
	Account account.Account `json:"account"`
	Balance uint64          `json:"balance"`
}

// Parameters - everything that determines the genesis block
type Parameters struct {
	Chain      string
	Timestamp  uint64
	Endowments []Endowment
}

// DevelopmentParameters - a chain with the development accounts endowed
func DevelopmentParameters(chainName string, timestamp uint64) Parameters {
	p := Parameters{
		Chain:     chainName,
		Timestamp: timestamp,
	}
	for _, name := range developmentAccounts {
		p.Endowments = append(p.Endowments, Endowment{
			Account: account.KeyPairFromString(name).Account(),
			Balance: DevelopmentEndowment,
		})
	}
	return p
}

// Block - the genesis block for a set of parameters
func Block(p Parameters) *block.Block {
	buffer := codec.AppendString(nil, p.Chain)
	buffer = codec.AppendVarint64(buffer, uint64(len(p.Endowments)))
	for _, e := range p.Endowments {
		buffer = codec.AppendFixed(buffer, e.Account[:])
		buffer = codec.AppendVarint64(buffer, e.Balance)
	}

	return &block.Block{
		Header: block.Header{
			Number:           BlockNumber,
			Timestamp:        p.Timestamp,
			Randomness:       digest.NewDigest([]byte("registry-genesis:" + p.Chain)),
			TransactionsHash: digest.NewDigest(buffer),
		},
		Transactions: nil,
	}
}

// Initialise - write the genesis block unless the store already has one
//
// an existing store must have been created with the same parameters
func Initialise(store *storage.Store, p Parameters) (digest.Digest, error) {
	if !chain.Valid(p.Chain) {
		return digest.Digest{}, fault.InvalidChain
	}

	genesisBlock := Block(p)
	genesisHash := genesisBlock.Hash()

	tx, err := store.Begin()
	if nil != err {
		return digest.Digest{}, err
	}
	defer tx.Abort()

	if existing, found := state.GenesisHash(tx); found {
		if existing != genesisHash {
			return digest.Digest{}, fault.GenesisMismatch
		}
		return existing, nil
	}

	for _, e := range p.Endowments {
		if err := currency.Mint(tx, e.Account, e.Balance); nil != err {
			return digest.Digest{}, err
		}
	}

	block.Put(tx, genesisBlock, nil)
	state.SetHead(tx, BlockNumber)
	state.SetGenesisHash(tx, genesisHash)

	if err := tx.Commit(); nil != err {
		return digest.Digest{}, err
	}
	return genesisHash, nil
}
