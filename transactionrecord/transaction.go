// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/identifier"
)

// TagType - type code for messages
type TagType uint64

// enumerate the possible message types
// this is encoded a Varint64 at start of "Packed"
//
// the encoding of an existing tag never changes: an incompatible
// encoding gets a new tag appended before InvalidTag
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	RegisterOrgTag      = TagType(iota)
	UnregisterOrgTag    = TagType(iota)
	RegisterUserTag     = TagType(iota)
	UnregisterUserTag   = TagType(iota)
	RegisterMemberTag   = TagType(iota)
	RegisterProjectTag  = TagType(iota)
	SetCheckpointTag    = TagType(iota)
	CreateCheckpointTag = TagType(iota)
	TransferTag         = TagType(iota)
	TransferFromOrgTag  = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Message - one of the registry messages below
//
// the set is closed: only types in this package implement it
type Message interface {
	Tag() TagType
	Pack() Packed
	isMessage()
}

// RegisterOrg - create an org with the author's user as sole member
type RegisterOrg struct {
	OrgId identifier.Id `json:"orgId"`
}

// UnregisterOrg - remove an org without projects whose only member is the author
type UnregisterOrg struct {
	OrgId identifier.Id `json:"orgId"`
}

// RegisterUser - bind a user id to the author's account
type RegisterUser struct {
	UserId identifier.Id `json:"userId"`
}

// UnregisterUser - remove the author's own user
type UnregisterUser struct {
	UserId identifier.Id `json:"userId"`
}

// RegisterMember - add a user to an org
type RegisterMember struct {
	OrgId  identifier.Id `json:"orgId"`
	UserId identifier.Id `json:"userId"`
}

// RegisterProject - create a project under an org or a user
type RegisterProject struct {
	ProjectName   identifier.ProjectName `json:"projectName"`
	ProjectDomain identifier.Domain      `json:"projectDomain"`
	CheckpointId  digest.Digest          `json:"checkpointId"`
	Metadata      identifier.Bytes128    `json:"metadata"`
}

// SetCheckpoint - move a project to a descendant of its initial checkpoint
type SetCheckpoint struct {
	ProjectName     identifier.ProjectName `json:"projectName"`
	ProjectDomain   identifier.Domain      `json:"projectDomain"`
	NewCheckpointId digest.Digest          `json:"newCheckpointId"`
}

// CreateCheckpoint - add a checkpoint to the ledger
type CreateCheckpoint struct {
	ProjectHash          digest.Digest  `json:"projectHash"`
	PreviousCheckpointId *digest.Digest `json:"previousCheckpointId"`
}

// Transfer - move balance from the author to a recipient
type Transfer struct {
	Recipient account.Account `json:"recipient"`
	Balance   uint64          `json:"balance"`
}

// TransferFromOrg - move balance from an org account to a recipient
type TransferFromOrg struct {
	OrgId     identifier.Id   `json:"orgId"`
	Recipient account.Account `json:"recipient"`
	Value     uint64          `json:"value"`
}

func (RegisterOrg) isMessage()      {}
func (UnregisterOrg) isMessage()    {}
func (RegisterUser) isMessage()     {}
func (UnregisterUser) isMessage()   {}
func (RegisterMember) isMessage()   {}
func (RegisterProject) isMessage()  {}
func (SetCheckpoint) isMessage()    {}
func (CreateCheckpoint) isMessage() {}
func (Transfer) isMessage()         {}
func (TransferFromOrg) isMessage()  {}

// Tag - the record type code
func (RegisterOrg) Tag() TagType      { return RegisterOrgTag }
func (UnregisterOrg) Tag() TagType    { return UnregisterOrgTag }
func (RegisterUser) Tag() TagType     { return RegisterUserTag }
func (UnregisterUser) Tag() TagType   { return UnregisterUserTag }
func (RegisterMember) Tag() TagType   { return RegisterMemberTag }
func (RegisterProject) Tag() TagType  { return RegisterProjectTag }
func (SetCheckpoint) Tag() TagType    { return SetCheckpointTag }
func (CreateCheckpoint) Tag() TagType { return CreateCheckpointTag }
func (Transfer) Tag() TagType         { return TransferTag }
func (TransferFromOrg) Tag() TagType  { return TransferFromOrgTag }

// Type - returns the record type code
func (record Packed) Type() TagType {
	recordType, n := codec.FromVarint64(record)
	if 0 == n {
		return NullTag
	}
	return TagType(recordType)
}

// names of the message types
var recordNames = map[TagType]string{
	RegisterOrgTag:      "RegisterOrg",
	UnregisterOrgTag:    "UnregisterOrg",
	RegisterUserTag:     "RegisterUser",
	UnregisterUserTag:   "UnregisterUser",
	RegisterMemberTag:   "RegisterMember",
	RegisterProjectTag:  "RegisterProject",
	SetCheckpointTag:    "SetCheckpoint",
	CreateCheckpointTag: "CreateCheckpoint",
	TransferTag:         "Transfer",
	TransferFromOrgTag:  "TransferFromOrg",
}

// RecordName - returns the name of a message as a string
func RecordName(message Message) (string, bool) {
	if nil == message {
		return "*unknown*", false
	}
	name, ok := recordNames[message.Tag()]
	if !ok {
		return "*unknown*", false
	}
	return name, true
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed from its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}
