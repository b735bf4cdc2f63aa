// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package currency - account balances
//
// a balance never goes negative: every operation checks before it
// writes, so a failure leaves all balances unchanged
package currency

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
)

// FreeBalance - spendable balance of an account
func FreeBalance(r storage.Reader, a account.Account) uint64 {
	return state.FreeBalance(r, a)
}

// Withdraw - remove value from an account
func Withdraw(w storage.Writer, a account.Account, value uint64) error {
	balance := state.FreeBalance(w, a)
	if balance < value {
		return fault.InsufficientBalance
	}
	state.SetFreeBalance(w, a, balance-value)
	return nil
}

// Deposit - add value to an account
func Deposit(w storage.Writer, a account.Account, value uint64) error {
	balance := state.FreeBalance(w, a)
	if balance > math.MaxUint64-value {
		return fault.BalanceOverflow
	}
	state.SetFreeBalance(w, a, balance+value)
	return nil
}

// Transfer - move value between accounts
func Transfer(w storage.Writer, from account.Account, to account.Account, value uint64) error {
	fromBalance := state.FreeBalance(w, from)
	if fromBalance < value {
		return fault.InsufficientBalance
	}
	if from == to {
		return nil
	}
	toBalance := state.FreeBalance(w, to)
	if toBalance > math.MaxUint64-value {
		return fault.BalanceOverflow
	}
	state.SetFreeBalance(w, from, fromBalance-value)
	state.SetFreeBalance(w, to, toBalance+value)
	return nil
}

// Mint - create new value in an account, used by genesis
func Mint(w storage.Writer, a account.Account, value uint64) error {
	issuance := state.TotalIssuance(w)
	if issuance > math.MaxUint64-value {
		return fault.BalanceOverflow
	}
	if err := Deposit(w, a, value); nil != err {
		return err
	}
	state.SetTotalIssuance(w, issuance+value)
	return nil
}

// Burn - remove already withdrawn value from circulation
//
// the value was held by some account so it cannot exceed the issuance
func Burn(w storage.Writer, value uint64) {
	issuance := state.TotalIssuance(w)
	if value > issuance {
		logger.Panicf("currency: burn: %d exceeds total issuance: %d", value, issuance)
	}
	state.SetTotalIssuance(w, issuance-value)
}
