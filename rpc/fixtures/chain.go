// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/genesis"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// Chain - an in-memory development chain
func Chain(t *testing.T) (*storage.Store, *block.Executor) {
	store, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open memory store error: %s", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := genesis.Initialise(store, genesis.DevelopmentParameters(chain.Testing, 0)); nil != err {
		t.Fatalf("genesis error: %s", err)
	}

	executor, err := block.NewExecutor(logger.New(LogCategory), store)
	if nil != err {
		t.Fatalf("executor error: %s", err)
	}
	return store, executor
}

// Sign - a packed transaction for the executor's chain
func Sign(executor *block.Executor, keyPair *account.KeyPair, nonce uint64, fee uint64, message transactionrecord.Message) transactionrecord.Packed {
	tx := &transactionrecord.Transaction{
		Message:     message,
		Author:      keyPair.Account(),
		Nonce:       nonce,
		GenesisHash: executor.GenesisHash(),
		Fee:         fee,
	}
	tx.Sign(keyPair)
	return tx.Pack()
}
