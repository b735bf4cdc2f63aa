// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the registry state machine
//
// each message is validated completely against the store before any
// write is made, so a handler error leaves the store unchanged
package registry

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// BlockContext - the block a message is applied in
type BlockContext struct {
	Number     uint64
	Author     *account.Account // nil during validation
	Randomness digest.Digest
}

type handler func(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error)

// Machine - applies messages to a store
type Machine struct {
	log      *logger.L
	handlers map[transactionrecord.TagType]handler
}

// New - create a state machine
func New(log *logger.L) *Machine {
	return &Machine{
		log: log,
		handlers: map[transactionrecord.TagType]handler{
			transactionrecord.RegisterOrgTag:      registerOrg,
			transactionrecord.UnregisterOrgTag:    unregisterOrg,
			transactionrecord.RegisterUserTag:     registerUser,
			transactionrecord.UnregisterUserTag:   unregisterUser,
			transactionrecord.RegisterMemberTag:   registerMember,
			transactionrecord.RegisterProjectTag:  registerProject,
			transactionrecord.SetCheckpointTag:    setCheckpoint,
			transactionrecord.CreateCheckpointTag: createCheckpoint,
			transactionrecord.TransferTag:         transfer,
			transactionrecord.TransferFromOrgTag:  transferFromOrg,
		},
	}
}

// Apply - validate and apply one message signed by author
//
// on success the returned event is the message's success event
func (m *Machine) Apply(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	if nil == message {
		return nil, fault.UnknownMessageTag
	}
	h, ok := m.handlers[message.Tag()]
	if !ok {
		return nil, fault.UnknownMessageTag
	}

	e, err := h(w, ctx, author, message)
	if nil != err {
		m.log.Debugf("block: %d  author: %s  message: %#v  error: %s", ctx.Number, author, message, err)
		return nil, err
	}
	m.log.Debugf("block: %d  author: %s  message: %#v  ok", ctx.Number, author, message)
	return e, nil
}

// OrgAccount - the account of an org registered in a block
func OrgAccount(randomness digest.Digest, orgId identifier.Id) account.Account {
	buffer := make([]byte, 0, len(randomness)+len(orgAccountContext)+len(orgId))
	buffer = append(buffer, randomness[:]...)
	buffer = append(buffer, orgAccountContext...)
	buffer = append(buffer, orgId...)
	return account.Account(digest.NewDigest(buffer))
}

const orgAccountContext = "org-account-id"

// the user id of the author, if any
func authorUser(r storage.Reader, author account.Account) (identifier.Id, bool) {
	return state.UserOfAccount(r, author)
}

// the org, and an error unless the author is one of its members
func memberOrg(r storage.Reader, orgId identifier.Id, author account.Account) (*state.Org, error) {
	org, found := state.GetOrg(r, orgId)
	if !found {
		return nil, fault.InexistentOrg
	}
	userId, found := authorUser(r, author)
	if !found || !org.HasMember(userId) {
		return nil, fault.InsufficientSenderPermissions
	}
	return org, nil
}

// the user, and an error unless the author owns its account
func ownedUser(r storage.Reader, userId identifier.Id, author account.Account) (*state.User, error) {
	user, found := state.GetUser(r, userId)
	if !found {
		return nil, fault.InexistentUser
	}
	if user.Account != author {
		return nil, fault.InsufficientSenderPermissions
	}
	return user, nil
}

// an org or user id must be new in the shared namespace
func checkNewId(r storage.Reader, id identifier.Id) error {
	if _, found := state.GetOrg(r, id); found {
		return fault.IdAlreadyTaken
	}
	if _, found := state.GetUser(r, id); found {
		return fault.IdAlreadyTaken
	}
	if state.IsRetired(r, id) {
		return fault.IdRetired
	}
	return nil
}
