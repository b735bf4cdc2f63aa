// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
)

// Unpack - turn a byte slice into a message
//
// returns the message and the number of bytes consumed, so a message
// can be followed by other fields
//
// e.g.
//   switch m := message.(type) {
//   case *transactionrecord.RegisterOrg:
func (record Packed) Unpack() (Message, int, error) {
	r := codec.NewReader(record)
	message, err := unpackMessage(r)
	if nil != err {
		return nil, 0, err
	}
	return message, len(record) - r.Remaining(), nil
}

func unpackMessage(r *codec.Reader) (Message, error) {

	tag := TagType(r.Varint64())
	if nil != r.Err() {
		return nil, fault.NotTransactionPack
	}

	var message Message
	var err error

	switch tag {

	case RegisterOrgTag:
		m := &RegisterOrg{}
		m.OrgId, err = readId(r)
		message = m

	case UnregisterOrgTag:
		m := &UnregisterOrg{}
		m.OrgId, err = readId(r)
		message = m

	case RegisterUserTag:
		m := &RegisterUser{}
		m.UserId, err = readId(r)
		message = m

	case UnregisterUserTag:
		m := &UnregisterUser{}
		m.UserId, err = readId(r)
		message = m

	case RegisterMemberTag:
		m := &RegisterMember{}
		m.OrgId, err = readId(r)
		if nil == err {
			m.UserId, err = readId(r)
		}
		message = m

	case RegisterProjectTag:
		m := &RegisterProject{}
		var projectId identifier.ProjectId
		projectId, err = identifier.UnpackProjectId(r)
		if nil == err {
			m.ProjectName = projectId.Name
			m.ProjectDomain = projectId.Domain
			m.CheckpointId = readDigest(r)
			m.Metadata = identifier.Bytes128(r.Bytes(identifier.MetadataLength))
		}
		message = m

	case SetCheckpointTag:
		m := &SetCheckpoint{}
		var projectId identifier.ProjectId
		projectId, err = identifier.UnpackProjectId(r)
		if nil == err {
			m.ProjectName = projectId.Name
			m.ProjectDomain = projectId.Domain
			m.NewCheckpointId = readDigest(r)
		}
		message = m

	case CreateCheckpointTag:
		m := &CreateCheckpoint{}
		m.ProjectHash = readDigest(r)
		if r.Bool() {
			previous := readDigest(r)
			m.PreviousCheckpointId = &previous
		}
		message = m

	case TransferTag:
		m := &Transfer{}
		m.Recipient = readAccount(r)
		m.Balance = r.Varint64()
		message = m

	case TransferFromOrgTag:
		m := &TransferFromOrg{}
		m.OrgId, err = readId(r)
		m.Recipient = readAccount(r)
		m.Value = r.Varint64()
		message = m

	default:
		return nil, fault.UnknownMessageTag
	}

	if nil != r.Err() {
		return nil, fault.NotTransactionPack
	}
	if nil != err {
		return nil, err
	}
	return message, nil
}

func readId(r *codec.Reader) (identifier.Id, error) {
	s := r.String(identifier.MaximumLength)
	if nil != r.Err() {
		return "", r.Err()
	}
	return identifier.NewId(s)
}

func readDigest(r *codec.Reader) digest.Digest {
	d := digest.Digest{}
	copy(d[:], r.Fixed(digest.Length))
	return d
}

func readAccount(r *codec.Reader) account.Account {
	a := account.Account{}
	copy(a[:], r.Fixed(account.Length))
	return a
}
