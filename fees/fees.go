// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fees - transaction fee payment
//
// a fee is withdrawn from the payer account, a fixed share is burned
// and the rest is credited to the author of the block
package fees

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/currency"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// fee parameters
const (
	BaseFee         = uint64(1)  // minimum fee of any transaction
	RegistrationFee = uint64(10) // minimum fee to register an org or a user
	BurnPercent     = uint64(1)  // share of every fee removed from circulation
)

// Payment - where a fee went
type Payment struct {
	Payer  account.Account
	Fee    uint64
	Burned uint64
	Reward uint64
}

// Minimum - the lowest fee accepted for a message
func Minimum(message transactionrecord.Message) uint64 {
	switch message.(type) {
	case *transactionrecord.RegisterOrg, *transactionrecord.RegisterUser:
		return RegistrationFee
	default:
		return BaseFee
	}
}

// CheckMinimum - reject a fee below the minimum for the message
func CheckMinimum(message transactionrecord.Message, fee uint64) error {
	if fee < Minimum(message) {
		return fault.InsufficientFee
	}
	return nil
}

// the org whose account pays for the message, if any
func payingOrg(message transactionrecord.Message) (identifier.Id, bool) {
	switch m := message.(type) {
	case *transactionrecord.RegisterProject:
		if m.ProjectDomain.IsOrg() {
			return m.ProjectDomain.Id, true
		}
	case *transactionrecord.SetCheckpoint:
		if m.ProjectDomain.IsOrg() {
			return m.ProjectDomain.Id, true
		}
	case *transactionrecord.UnregisterOrg:
		return m.OrgId, true
	case *transactionrecord.TransferFromOrg:
		return m.OrgId, true
	case *transactionrecord.RegisterMember:
		return m.OrgId, true
	}
	return "", false
}

// PayerAccount - the account charged for a message
//
// messages acting on an org are paid by the org when the author is
// one of its members, everything else is paid by the author
func PayerAccount(r storage.Reader, author account.Account, message transactionrecord.Message) account.Account {
	orgId, ok := payingOrg(message)
	if !ok {
		return author
	}
	userId, found := state.UserOfAccount(r, author)
	if !found {
		return author
	}
	org, found := state.GetOrg(r, orgId)
	if !found || !org.HasMember(userId) {
		return author
	}
	return org.Account
}

// Split - the burned and rewarded shares of a fee
//
// the burned share is rounded to the nearest unit, half rounds up
func Split(fee uint64) (burned uint64, reward uint64) {
	burned = fee / 100 * BurnPercent
	burned += (fee%100*BurnPercent + 50) / 100
	return burned, fee - burned
}

// Pay - withdraw the fee and distribute it
//
// with no block author the reward share is burned as well; callers
// run Pay inside a storage layer and abort it on error
func Pay(w storage.Writer, author account.Account, fee uint64, message transactionrecord.Message, blockAuthor *account.Account) (*Payment, error) {
	payer := PayerAccount(w, author, message)

	burned, reward := Split(fee)
	if nil != blockAuthor && *blockAuthor != payer {
		balance := currency.FreeBalance(w, *blockAuthor)
		if balance+reward < balance {
			return nil, fault.BalanceOverflow
		}
	}

	if err := currency.Withdraw(w, payer, fee); nil != err {
		return nil, err
	}

	if nil == blockAuthor {
		currency.Burn(w, fee)
	} else {
		currency.Burn(w, burned)
		if err := currency.Deposit(w, *blockAuthor, reward); nil != err {
			return nil, err
		}
	}

	return &Payment{
		Payer:  payer,
		Fee:    fee,
		Burned: burned,
		Reward: reward,
	}, nil
}
