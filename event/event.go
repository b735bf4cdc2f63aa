// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - the event log emitted while applying transactions
//
// every applied transaction emits its message success event (only on
// success) followed by exactly one of ExtrinsicSuccess or
// ExtrinsicFailed
package event

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
)

// TagType - type code for events
type TagType uint64

// enumerate the possible events, the values are part of the encoding
const (
	NullTag = TagType(iota)

	OrgRegisteredTag     = TagType(iota)
	OrgUnregisteredTag   = TagType(iota)
	UserRegisteredTag    = TagType(iota)
	UserUnregisteredTag  = TagType(iota)
	MemberRegisteredTag  = TagType(iota)
	ProjectRegisteredTag = TagType(iota)
	CheckpointCreatedTag = TagType(iota)
	CheckpointSetTag     = TagType(iota)
	TransferredTag       = TagType(iota)
	ExtrinsicSuccessTag  = TagType(iota)
	ExtrinsicFailedTag   = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// limit on the error text of a failed event
const maxErrorLength = 256

// Event - one of the event types below
type Event interface {
	Tag() TagType
	Pack() []byte
	isEvent()
}

// OrgRegistered - RegisterOrg succeeded
type OrgRegistered struct {
	OrgId identifier.Id `json:"orgId"`
}

// OrgUnregistered - UnregisterOrg succeeded
type OrgUnregistered struct {
	OrgId identifier.Id `json:"orgId"`
}

// UserRegistered - RegisterUser succeeded
type UserRegistered struct {
	UserId identifier.Id `json:"userId"`
}

// UserUnregistered - UnregisterUser succeeded
type UserUnregistered struct {
	UserId identifier.Id `json:"userId"`
}

// MemberRegistered - RegisterMember succeeded
type MemberRegistered struct {
	UserId identifier.Id `json:"userId"`
	OrgId  identifier.Id `json:"orgId"`
}

// ProjectRegistered - RegisterProject succeeded
type ProjectRegistered struct {
	ProjectName   identifier.ProjectName `json:"projectName"`
	ProjectDomain identifier.Domain      `json:"projectDomain"`
}

// CheckpointCreated - CreateCheckpoint succeeded
type CheckpointCreated struct {
	CheckpointId digest.Digest `json:"checkpointId"`
}

// CheckpointSet - SetCheckpoint succeeded
type CheckpointSet struct {
	ProjectName   identifier.ProjectName `json:"projectName"`
	ProjectDomain identifier.Domain      `json:"projectDomain"`
	CheckpointId  digest.Digest          `json:"checkpointId"`
}

// Transferred - Transfer or TransferFromOrg succeeded
type Transferred struct {
	From  account.Account `json:"from"`
	To    account.Account `json:"to"`
	Value uint64          `json:"value"`
}

// ExtrinsicSuccess - the message was applied
type ExtrinsicSuccess struct{}

// ExtrinsicFailed - the message was rejected, only the fee was charged
type ExtrinsicFailed struct {
	Error string `json:"error"`
}

func (OrgRegistered) isEvent()     {}
func (OrgUnregistered) isEvent()   {}
func (UserRegistered) isEvent()    {}
func (UserUnregistered) isEvent()  {}
func (MemberRegistered) isEvent()  {}
func (ProjectRegistered) isEvent() {}
func (CheckpointCreated) isEvent() {}
func (CheckpointSet) isEvent()     {}
func (Transferred) isEvent()       {}
func (ExtrinsicSuccess) isEvent()  {}
func (ExtrinsicFailed) isEvent()   {}

// Tag - the event type code
func (OrgRegistered) Tag() TagType     { return OrgRegisteredTag }
func (OrgUnregistered) Tag() TagType   { return OrgUnregisteredTag }
func (UserRegistered) Tag() TagType    { return UserRegisteredTag }
func (UserUnregistered) Tag() TagType  { return UserUnregisteredTag }
func (MemberRegistered) Tag() TagType  { return MemberRegisteredTag }
func (ProjectRegistered) Tag() TagType { return ProjectRegisteredTag }
func (CheckpointCreated) Tag() TagType { return CheckpointCreatedTag }
func (CheckpointSet) Tag() TagType     { return CheckpointSetTag }
func (Transferred) Tag() TagType       { return TransferredTag }
func (ExtrinsicSuccess) Tag() TagType  { return ExtrinsicSuccessTag }
func (ExtrinsicFailed) Tag() TagType   { return ExtrinsicFailedTag }

// Failed - the failure event for an error
func Failed(err error) *ExtrinsicFailed {
	return &ExtrinsicFailed{Error: err.Error()}
}

// Err - the typed error carried by the event
func (e ExtrinsicFailed) Err() error {
	return fault.Lookup(e.Error)
}

func header(tag TagType) []byte {
	return codec.AppendVarint64(nil, uint64(tag))
}

// Pack - tag ++ org id
func (e OrgRegistered) Pack() []byte {
	return codec.AppendString(header(OrgRegisteredTag), string(e.OrgId))
}

// Pack - tag ++ org id
func (e OrgUnregistered) Pack() []byte {
	return codec.AppendString(header(OrgUnregisteredTag), string(e.OrgId))
}

// Pack - tag ++ user id
func (e UserRegistered) Pack() []byte {
	return codec.AppendString(header(UserRegisteredTag), string(e.UserId))
}

// Pack - tag ++ user id
func (e UserUnregistered) Pack() []byte {
	return codec.AppendString(header(UserUnregisteredTag), string(e.UserId))
}

// Pack - tag ++ user id ++ org id
func (e MemberRegistered) Pack() []byte {
	buffer := codec.AppendString(header(MemberRegisteredTag), string(e.UserId))
	return codec.AppendString(buffer, string(e.OrgId))
}

// Pack - tag ++ project id
func (e ProjectRegistered) Pack() []byte {
	return identifier.ProjectId{Name: e.ProjectName, Domain: e.ProjectDomain}.Pack(header(ProjectRegisteredTag))
}

// Pack - tag ++ checkpoint id
func (e CheckpointCreated) Pack() []byte {
	return codec.AppendFixed(header(CheckpointCreatedTag), e.CheckpointId[:])
}

// Pack - tag ++ project id ++ checkpoint id
func (e CheckpointSet) Pack() []byte {
	buffer := identifier.ProjectId{Name: e.ProjectName, Domain: e.ProjectDomain}.Pack(header(CheckpointSetTag))
	return codec.AppendFixed(buffer, e.CheckpointId[:])
}

// Pack - tag ++ from ++ to ++ value
func (e Transferred) Pack() []byte {
	buffer := codec.AppendFixed(header(TransferredTag), e.From[:])
	buffer = codec.AppendFixed(buffer, e.To[:])
	return codec.AppendVarint64(buffer, e.Value)
}

// Pack - tag only
func (e ExtrinsicSuccess) Pack() []byte {
	return header(ExtrinsicSuccessTag)
}

// Pack - tag ++ error text
func (e ExtrinsicFailed) Pack() []byte {
	text := e.Error
	if len(text) > maxErrorLength {
		text = text[:maxErrorLength]
	}
	return codec.AppendString(header(ExtrinsicFailedTag), text)
}

// names of the events for display
var eventNames = map[TagType]string{
	OrgRegisteredTag:     "OrgRegistered",
	OrgUnregisteredTag:   "OrgUnregistered",
	UserRegisteredTag:    "UserRegistered",
	UserUnregisteredTag:  "UserUnregistered",
	MemberRegisteredTag:  "MemberRegistered",
	ProjectRegisteredTag: "ProjectRegistered",
	CheckpointCreatedTag: "CheckpointCreated",
	CheckpointSetTag:     "CheckpointSet",
	TransferredTag:       "Transferred",
	ExtrinsicSuccessTag:  "ExtrinsicSuccess",
	ExtrinsicFailedTag:   "ExtrinsicFailed",
}

// Name - display name of an event
func Name(e Event) string {
	if nil == e {
		return "*unknown*"
	}
	if name, ok := eventNames[e.Tag()]; ok {
		return name
	}
	return "*unknown*"
}
