// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - RPC balance and nonce of an account
package account

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
)

const (
	rateLimitAccount = 200
	rateBurstAccount = 100
)

// Account - an RPC entry for account state
type Account struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Store   *storage.Store
}

// Arguments - the account to query
type Arguments struct {
	Account account.Account `json:"account"`
}

// BalanceReply - free balance
type BalanceReply struct {
	Balance uint64 `json:"balance,string"`
}

// NonceReply - next nonce to use
type NonceReply struct {
	Nonce uint64 `json:"nonce,string"`
}

// New - create the service
func New(log *logger.L, store *storage.Store) *Account {
	return &Account{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAccount, rateBurstAccount),
		Store:   store,
	}
}

// Balance - free balance of an account, zero if never funded
func (a *Account) Balance(arguments *Arguments, reply *BalanceReply) error {
	return a.view(arguments, func(r storage.Reader) {
		reply.Balance = state.FreeBalance(r, arguments.Account)
	})
}

// Nonce - the nonce the next transaction of the account must carry
func (a *Account) Nonce(arguments *Arguments, reply *NonceReply) error {
	return a.view(arguments, func(r storage.Reader) {
		reply.Nonce = state.Nonce(r, arguments.Account)
	})
}

func (a *Account) view(arguments *Arguments, f func(r storage.Reader)) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}
	snapshot, err := a.Store.Snapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()

	f(snapshot)
	return nil
}
