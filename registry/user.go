// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/currency"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

func registerUser(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.RegisterUser)

	if err := checkNewId(w, m.UserId); nil != err {
		return nil, err
	}
	if _, found := authorUser(w, author); found {
		return nil, fault.UserAccountAssociated
	}

	user := &state.User{
		Account:  author,
		Projects: []identifier.ProjectName{},
	}
	state.PutUser(w, m.UserId, user)
	state.Retire(w, m.UserId)

	return &event.UserRegistered{UserId: m.UserId}, nil
}

func unregisterUser(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.UnregisterUser)

	user, err := ownedUser(w, m.UserId, author)
	if nil != err {
		return nil, err
	}
	if 0 != len(user.Projects) {
		return nil, fault.UnregisterableUser
	}
	orgs, err := state.OrgsOfUser(w, m.UserId)
	if nil != err {
		return nil, err
	}
	if 0 != len(orgs) {
		return nil, fault.UnregisterableUser
	}

	state.RemoveUser(w, m.UserId)

	return &event.UserUnregistered{UserId: m.UserId}, nil
}

func transfer(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.Transfer)

	if err := currency.Transfer(w, author, m.Recipient, m.Balance); nil != err {
		return nil, err
	}

	return &event.Transferred{From: author, To: m.Recipient, Value: m.Balance}, nil
}
