// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bitmark-inc/registryd/client"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
)

type eventItem struct {
	Type string      `json:"type"`
	Data event.Event `json:"data"`
}

type appliedItem struct {
	TxId        digest.Digest `json:"txId"`
	BlockNumber uint64        `json:"blockNumber"`
	BlockHash   digest.Digest `json:"blockHash"`
	Position    uint64        `json:"position"`
	Events      []eventItem   `json:"events"`
	Result      *eventItem    `json:"result,omitempty"`

	CheckpointId *digest.Digest `json:"checkpointId,omitempty"`
}

func appliedResult(applied *client.TransactionApplied) *appliedItem {
	item := &appliedItem{
		TxId:        applied.Id,
		BlockNumber: applied.BlockNumber,
		BlockHash:   applied.BlockHash,
		Position:    applied.Position,
		Events:      make([]eventItem, 0, len(applied.Events)),
	}
	for _, e := range applied.Events {
		item.Events = append(item.Events, eventItem{Type: event.Name(e), Data: e})
	}
	if nil != applied.Result {
		item.Result = &eventItem{Type: event.Name(applied.Result), Data: applied.Result}
	}
	return item
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
