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

func registerOrg(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.RegisterOrg)

	if err := checkNewId(w, m.OrgId); nil != err {
		return nil, err
	}
	userId, found := authorUser(w, author)
	if !found {
		return nil, fault.AuthorHasNoAssociatedUser
	}

	org := &state.Org{
		Account:  OrgAccount(ctx.Randomness, m.OrgId),
		Members:  []identifier.Id{userId},
		Projects: []identifier.ProjectName{},
	}
	state.PutOrg(w, m.OrgId, org)
	state.Retire(w, m.OrgId)

	return &event.OrgRegistered{OrgId: m.OrgId}, nil
}

func unregisterOrg(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.UnregisterOrg)

	org, found := state.GetOrg(w, m.OrgId)
	if !found {
		return nil, fault.InexistentOrg
	}
	userId, found := authorUser(w, author)
	if !found || 0 != len(org.Projects) || 1 != len(org.Members) || userId != org.Members[0] {
		return nil, fault.UnregisterableOrg
	}

	state.RemoveOrg(w, m.OrgId)

	return &event.OrgUnregistered{OrgId: m.OrgId}, nil
}

func registerMember(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.RegisterMember)

	org, found := state.GetOrg(w, m.OrgId)
	if !found {
		return nil, fault.InexistentOrg
	}
	if _, found := state.GetUser(w, m.UserId); !found {
		return nil, fault.InexistentUser
	}
	if _, err := memberOrg(w, m.OrgId, author); nil != err {
		return nil, err
	}
	if org.HasMember(m.UserId) {
		return nil, fault.AlreadyAMember
	}

	org.Members = append(org.Members, m.UserId)
	state.PutOrg(w, m.OrgId, org)

	return &event.MemberRegistered{UserId: m.UserId, OrgId: m.OrgId}, nil
}

func transferFromOrg(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.TransferFromOrg)

	org, err := memberOrg(w, m.OrgId, author)
	if nil != err {
		return nil, err
	}
	if err := currency.Transfer(w, org.Account, m.Recipient, m.Value); nil != err {
		return nil, err
	}

	return &event.Transferred{From: org.Account, To: m.Recipient, Value: m.Value}, nil
}
