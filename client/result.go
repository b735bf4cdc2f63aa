// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// the event a successful message emits, NullTag if only the dispatch
// result matters
func expectedEvent(message transactionrecord.Message) event.TagType {
	switch message.(type) {
	case *transactionrecord.RegisterOrg:
		return event.OrgRegisteredTag
	case *transactionrecord.UnregisterOrg:
		return event.OrgUnregisteredTag
	case *transactionrecord.RegisterUser:
		return event.UserRegisteredTag
	case *transactionrecord.UnregisterUser:
		return event.UserUnregisteredTag
	case *transactionrecord.RegisterMember:
		return event.MemberRegisteredTag
	case *transactionrecord.RegisterProject:
		return event.ProjectRegisteredTag
	case *transactionrecord.SetCheckpoint:
		return event.CheckpointSetTag
	case *transactionrecord.CreateCheckpoint:
		return event.CheckpointCreatedTag
	default:
		return event.NullTag
	}
}

// ResultFromEvents - the outcome of the transaction at position in a
// block's event records
//
// returns the message's success event (nil for transfers), the
// registry error of a failed message, or a decode error if the
// expected events are missing
func ResultFromEvents(message transactionrecord.Message, records []event.Record, position uint64) (event.Event, error) {
	var dispatch event.Event
	for _, record := range records {
		if position != record.TxIndex {
			continue
		}
		switch record.Event.(type) {
		case *event.ExtrinsicSuccess, *event.ExtrinsicFailed:
			dispatch = record.Event
		}
		if nil != dispatch {
			break
		}
	}

	switch e := dispatch.(type) {
	case nil:
		return nil, fault.MissingDispatchEvent
	case *event.ExtrinsicFailed:
		return nil, e.Err()
	}

	expected := expectedEvent(message)
	if event.NullTag == expected {
		return nil, nil
	}

	// several transactions in a block can emit the same kind of event
	for _, record := range records {
		if record.TxIndex < position {
			continue
		}
		if record.TxIndex > position {
			break
		}
		if expected == record.Event.Tag() {
			return record.Event, nil
		}
	}
	return nil, fault.MissingSuccessEvent
}
