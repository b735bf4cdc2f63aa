// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/identifier"
)

// Pack - tag ++ org id
func (message RegisterOrg) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(RegisterOrgTag))
	return codec.AppendString(buffer, string(message.OrgId))
}

// Pack - tag ++ org id
func (message UnregisterOrg) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(UnregisterOrgTag))
	return codec.AppendString(buffer, string(message.OrgId))
}

// Pack - tag ++ user id
func (message RegisterUser) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(RegisterUserTag))
	return codec.AppendString(buffer, string(message.UserId))
}

// Pack - tag ++ user id
func (message UnregisterUser) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(UnregisterUserTag))
	return codec.AppendString(buffer, string(message.UserId))
}

// Pack - tag ++ org id ++ user id
func (message RegisterMember) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(RegisterMemberTag))
	buffer = codec.AppendString(buffer, string(message.OrgId))
	return codec.AppendString(buffer, string(message.UserId))
}

// Pack - tag ++ project id ++ checkpoint ++ metadata
func (message RegisterProject) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(RegisterProjectTag))
	buffer = identifier.ProjectId{Name: message.ProjectName, Domain: message.ProjectDomain}.Pack(buffer)
	buffer = codec.AppendFixed(buffer, message.CheckpointId[:])
	return codec.AppendBytes(buffer, message.Metadata)
}

// Pack - tag ++ project id ++ checkpoint
func (message SetCheckpoint) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(SetCheckpointTag))
	buffer = identifier.ProjectId{Name: message.ProjectName, Domain: message.ProjectDomain}.Pack(buffer)
	return codec.AppendFixed(buffer, message.NewCheckpointId[:])
}

// Pack - tag ++ project hash ++ option previous checkpoint
func (message CreateCheckpoint) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(CreateCheckpointTag))
	buffer = codec.AppendFixed(buffer, message.ProjectHash[:])
	buffer = codec.AppendBool(buffer, nil != message.PreviousCheckpointId)
	if nil != message.PreviousCheckpointId {
		buffer = codec.AppendFixed(buffer, message.PreviousCheckpointId[:])
	}
	return buffer
}

// Pack - tag ++ recipient ++ balance
func (message Transfer) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(TransferTag))
	buffer = codec.AppendFixed(buffer, message.Recipient[:])
	return codec.AppendVarint64(buffer, message.Balance)
}

// Pack - tag ++ org id ++ recipient ++ value
func (message TransferFromOrg) Pack() Packed {
	buffer := codec.AppendVarint64(nil, uint64(TransferFromOrgTag))
	buffer = codec.AppendString(buffer, string(message.OrgId))
	buffer = codec.AppendFixed(buffer, message.Recipient[:])
	return codec.AppendVarint64(buffer, message.Value)
}
