// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/identifier"
)

// key construction and the exact inverse decoders
//
// keys are relative to their pool, use the pool RawKey and StripKey
// to convert to and from database keys

// IdKey - key of an org, a user or a retired id
func IdKey(id identifier.Id) []byte {
	return codec.AppendString(nil, string(id))
}

// DecodeIdKey - inverse of IdKey
func DecodeIdKey(key []byte) (identifier.Id, error) {
	r := codec.NewReader(key)
	s := r.String(identifier.MaximumLength)
	if err := r.Finish(); nil != err {
		return "", err
	}
	return identifier.NewId(s)
}

// ProjectKey - key of a project and of its initial checkpoint
func ProjectKey(projectId identifier.ProjectId) []byte {
	return projectId.Pack(nil)
}

// DecodeProjectKey - inverse of ProjectKey
func DecodeProjectKey(key []byte) (identifier.ProjectId, error) {
	r := codec.NewReader(key)
	projectId, err := identifier.UnpackProjectId(r)
	if nil != err {
		return identifier.ProjectId{}, err
	}
	if err := r.Finish(); nil != err {
		return identifier.ProjectId{}, err
	}
	return projectId, nil
}

// CheckpointKey - key of a checkpoint
func CheckpointKey(id digest.Digest) []byte {
	return id[:]
}

// DecodeCheckpointKey - inverse of CheckpointKey
func DecodeCheckpointKey(key []byte) (digest.Digest, error) {
	return digest.FromBytes(key)
}

// MembershipKey - user key followed by org key
//
// grouping by user makes "is this user a member of any org" a prefix scan
func MembershipKey(userId identifier.Id, orgId identifier.Id) []byte {
	return append(IdKey(userId), IdKey(orgId)...)
}

// DecodeMembershipKey - inverse of MembershipKey
func DecodeMembershipKey(key []byte) (identifier.Id, identifier.Id, error) {
	r := codec.NewReader(key)
	user := r.String(identifier.MaximumLength)
	org := r.String(identifier.MaximumLength)
	if err := r.Finish(); nil != err {
		return "", "", err
	}
	userId, err := identifier.NewId(user)
	if nil != err {
		return "", "", err
	}
	orgId, err := identifier.NewId(org)
	if nil != err {
		return "", "", err
	}
	return userId, orgId, nil
}
