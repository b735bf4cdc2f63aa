// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
)

func allEvents() []event.Event {
	return []event.Event{
		&event.OrgRegistered{OrgId: "acme"},
		&event.OrgUnregistered{OrgId: "acme"},
		&event.UserRegistered{UserId: "alice"},
		&event.UserUnregistered{UserId: "alice"},
		&event.MemberRegistered{UserId: "bob", OrgId: "acme"},
		&event.ProjectRegistered{ProjectName: "app", ProjectDomain: identifier.Org("acme")},
		&event.CheckpointCreated{CheckpointId: digest.NewDigest([]byte("c"))},
		&event.CheckpointSet{ProjectName: "app", ProjectDomain: identifier.User("alice"), CheckpointId: digest.NewDigest([]byte("c"))},
		&event.Transferred{
			From:  account.KeyPairFromString("Alice").Account(),
			To:    account.KeyPairFromString("Bob").Account(),
			Value: 12345,
		},
		&event.ExtrinsicSuccess{},
		event.Failed(fault.InexistentOrg),
	}
}

func TestRecords(t *testing.T) {
	records := []event.Record{}
	for i, e := range allEvents() {
		records = append(records, event.Record{TxIndex: uint64(i / 2), Event: e})
	}

	back, err := event.UnpackRecords(event.PackRecords(records))
	require.Nil(t, err)
	assert.Equal(t, records, back)

	empty, err := event.UnpackRecords(event.PackRecords(nil))
	require.Nil(t, err)
	assert.Equal(t, 0, len(empty))
}

func TestRecordsText(t *testing.T) {
	records := event.Records{
		{TxIndex: 0, Event: &event.UserRegistered{UserId: "alice"}},
		{TxIndex: 0, Event: &event.ExtrinsicSuccess{}},
	}
	buffer, err := json.Marshal(struct {
		Events event.Records `json:"events"`
	}{records})
	require.Nil(t, err)

	var back struct {
		Events event.Records `json:"events"`
	}
	require.Nil(t, json.Unmarshal(buffer, &back))
	assert.Equal(t, records, back.Events)

	assert.Equal(t, fault.NotEventPack, back.Events.UnmarshalText([]byte("zz")))
}

func TestFailedCarriesTypedError(t *testing.T) {
	e := event.Failed(fault.InvalidCheckpointAncestry)
	back, err := event.Unpack(e.Pack())
	require.Nil(t, err)
	failed, ok := back.(*event.ExtrinsicFailed)
	require.True(t, ok)
	assert.Equal(t, fault.InvalidCheckpointAncestry, failed.Err())

	long := &event.ExtrinsicFailed{Error: strings.Repeat("x", 1000)}
	back, err = event.Unpack(long.Pack())
	require.Nil(t, err)
	assert.Equal(t, 256, len(back.(*event.ExtrinsicFailed).Error), "error text is clipped")
}

func TestDecodeErrors(t *testing.T) {
	_, err := event.Unpack(nil)
	assert.Equal(t, fault.NotEventPack, err)

	_, err = event.Unpack([]byte{byte(event.InvalidTag)})
	assert.Equal(t, fault.UnknownEventTag, err)

	packed := (&event.OrgRegistered{OrgId: "acme"}).Pack()
	_, err = event.Unpack(append(packed, 0))
	assert.Equal(t, fault.NotEventPack, err, "trailing")

	_, err = event.UnpackRecords([]byte{2, 0})
	assert.Equal(t, fault.NotEventPack, err, "truncated records")
}

func TestName(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range allEvents() {
		name := event.Name(e)
		assert.NotEqual(t, "*unknown*", name, "%#v", e)
		assert.False(t, seen[name], "duplicate name: %s", name)
		seen[name] = true
	}
	assert.Equal(t, "OrgRegistered", event.Name(&event.OrgRegistered{}))
	assert.Equal(t, "*unknown*", event.Name(nil))
}
