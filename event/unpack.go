// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"encoding/hex"

	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
)

// bound on events per block when decoding
const maximumRecords = 1 << 20

// Record - an event and the position of the transaction that emitted it
type Record struct {
	TxIndex uint64 `json:"txIndex"`
	Event   Event  `json:"event"`
}

// PackRecords - count ++ (tx index ++ length prefixed event)...
func PackRecords(records []Record) []byte {
	buffer := codec.AppendVarint64(nil, uint64(len(records)))
	for _, record := range records {
		buffer = codec.AppendVarint64(buffer, record.TxIndex)
		buffer = codec.AppendBytes(buffer, record.Event.Pack())
	}
	return buffer
}

// UnpackRecords - inverse of PackRecords
func UnpackRecords(buffer []byte) ([]Record, error) {
	r := codec.NewReader(buffer)
	n := r.Varint64()
	if n > maximumRecords {
		return nil, fault.NotEventPack
	}
	records := make([]Record, 0, n)
	for i := uint64(0); i < n; i += 1 {
		txIndex := r.Varint64()
		packed := r.Bytes(r.Remaining())
		if nil != r.Err() {
			return nil, fault.NotEventPack
		}
		e, err := Unpack(packed)
		if nil != err {
			return nil, err
		}
		records = append(records, Record{TxIndex: txIndex, Event: e})
	}
	if err := r.Finish(); nil != err {
		return nil, fault.NotEventPack
	}
	return records, nil
}

// Unpack - decode a single packed event
func Unpack(buffer []byte) (Event, error) {
	r := codec.NewReader(buffer)
	tag := TagType(r.Varint64())
	if nil != r.Err() {
		return nil, fault.NotEventPack
	}

	var e Event
	var err error

	switch tag {
	case OrgRegisteredTag:
		v := &OrgRegistered{}
		v.OrgId, err = readId(r)
		e = v
	case OrgUnregisteredTag:
		v := &OrgUnregistered{}
		v.OrgId, err = readId(r)
		e = v
	case UserRegisteredTag:
		v := &UserRegistered{}
		v.UserId, err = readId(r)
		e = v
	case UserUnregisteredTag:
		v := &UserUnregistered{}
		v.UserId, err = readId(r)
		e = v
	case MemberRegisteredTag:
		v := &MemberRegistered{}
		v.UserId, err = readId(r)
		if nil == err {
			v.OrgId, err = readId(r)
		}
		e = v
	case ProjectRegisteredTag:
		v := &ProjectRegistered{}
		var projectId identifier.ProjectId
		projectId, err = identifier.UnpackProjectId(r)
		v.ProjectName = projectId.Name
		v.ProjectDomain = projectId.Domain
		e = v
	case CheckpointCreatedTag:
		v := &CheckpointCreated{}
		copy(v.CheckpointId[:], r.Fixed(len(v.CheckpointId)))
		e = v
	case CheckpointSetTag:
		v := &CheckpointSet{}
		var projectId identifier.ProjectId
		projectId, err = identifier.UnpackProjectId(r)
		v.ProjectName = projectId.Name
		v.ProjectDomain = projectId.Domain
		copy(v.CheckpointId[:], r.Fixed(len(v.CheckpointId)))
		e = v
	case TransferredTag:
		v := &Transferred{}
		copy(v.From[:], r.Fixed(len(v.From)))
		copy(v.To[:], r.Fixed(len(v.To)))
		v.Value = r.Varint64()
		e = v
	case ExtrinsicSuccessTag:
		e = &ExtrinsicSuccess{}
	case ExtrinsicFailedTag:
		e = &ExtrinsicFailed{Error: r.String(maxErrorLength)}
	default:
		return nil, fault.UnknownEventTag
	}

	if nil != r.Finish() {
		return nil, fault.NotEventPack
	}
	if nil != err {
		return nil, err
	}
	return e, nil
}

func readId(r *codec.Reader) (identifier.Id, error) {
	s := r.String(identifier.MaximumLength)
	if nil != r.Err() {
		return "", r.Err()
	}
	return identifier.NewId(s)
}

// Records - block events with a hex text form for JSON
type Records []Record

// MarshalText - hex of PackRecords
func (records Records) MarshalText() ([]byte, error) {
	packed := PackRecords(records)
	b := make([]byte, hex.EncodedLen(len(packed)))
	hex.Encode(b, packed)
	return b, nil
}

// UnmarshalText - inverse of MarshalText
func (records *Records) UnmarshalText(s []byte) error {
	packed := make([]byte, hex.DecodedLen(len(s)))
	if _, err := hex.Decode(packed, s); nil != err {
		return fault.NotEventPack
	}
	r, err := UnpackRecords(packed)
	if nil != err {
		return err
	}
	*records = r
	return nil
}
