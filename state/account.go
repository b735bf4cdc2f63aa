// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/storage"
)

// keys in the chain pool
var (
	genesisKey  = []byte("genesis")
	headKey     = []byte("head")
	issuanceKey = []byte("issuance")
)

func getUint64(r storage.Reader, pool *storage.PoolHandle, key []byte) (uint64, bool) {
	buffer, found := r.Get(pool, key)
	if !found {
		return 0, false
	}
	if 8 != len(buffer) {
		logger.Panicf("state: %s: %x truncated record: %x", pool.Name(), key, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

func putUint64(w storage.Writer, pool *storage.PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	w.Put(pool, key, buffer)
}

// FreeBalance - balance of an account, zero if never funded
func FreeBalance(r storage.Reader, a account.Account) uint64 {
	balance, _ := getUint64(r, storage.Pool.Balances, a[:])
	return balance
}

// SetFreeBalance - replace the balance, a zero balance is removed
func SetFreeBalance(w storage.Writer, a account.Account, balance uint64) {
	if 0 == balance {
		w.Delete(storage.Pool.Balances, a[:])
		return
	}
	putUint64(w, storage.Pool.Balances, a[:], balance)
}

// Nonce - next expected nonce of an account
func Nonce(r storage.Reader, a account.Account) uint64 {
	nonce, _ := getUint64(r, storage.Pool.Nonces, a[:])
	return nonce
}

// SetNonce - replace the next expected nonce
func SetNonce(w storage.Writer, a account.Account, nonce uint64) {
	putUint64(w, storage.Pool.Nonces, a[:], nonce)
}

// TotalIssuance - sum of all balances
func TotalIssuance(r storage.Reader) uint64 {
	issuance, _ := getUint64(r, storage.Pool.Chain, issuanceKey)
	return issuance
}

// SetTotalIssuance - replace the total issuance
func SetTotalIssuance(w storage.Writer, issuance uint64) {
	putUint64(w, storage.Pool.Chain, issuanceKey, issuance)
}

// GenesisHash - hash of block zero
func GenesisHash(r storage.Reader) (digest.Digest, bool) {
	buffer, found := r.Get(storage.Pool.Chain, genesisKey)
	if !found {
		return digest.Digest{}, false
	}
	d, err := digest.FromBytes(buffer)
	if nil != err {
		logger.Panicf("state: corrupt genesis hash: %x", buffer)
	}
	return d, true
}

// SetGenesisHash - record the hash of block zero
func SetGenesisHash(w storage.Writer, d digest.Digest) {
	w.Put(storage.Pool.Chain, genesisKey, d[:])
}

// Head - number of the latest block
func Head(r storage.Reader) (uint64, bool) {
	return getUint64(r, storage.Pool.Chain, headKey)
}

// SetHead - record the latest block number
func SetHead(w storage.Writer, number uint64) {
	putUint64(w, storage.Pool.Chain, headKey, number)
}
