// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"time"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/checkpoint"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/query"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// DefaultPollInterval - time between status queries while waiting
const DefaultPollInterval = 500 * time.Millisecond

// Client - transaction submission on top of a backend
type Client struct {
	Backend

	pollInterval time.Duration
}

// Pending - a submitted transaction
type Pending struct {
	Id      digest.Digest
	Message transactionrecord.Message

	client *Client
}

// TransactionApplied - an included transaction
type TransactionApplied struct {
	Id          digest.Digest
	BlockNumber uint64
	BlockHash   digest.Digest
	Position    uint64

	// every event of this transaction, dispatch result last
	Events []event.Event

	// the message's success event, nil for transfers and failures
	Result event.Event
}

// New - client over a backend
func New(backend Backend) *Client {
	return &Client{
		Backend:      backend,
		pollInterval: DefaultPollInterval,
	}
}

// SetPollInterval - change how often Wait queries the backend
func (c *Client) SetPollInterval(interval time.Duration) {
	if interval > 0 {
		c.pollInterval = interval
	}
}

// Submit - send a signed transaction
func (c *Client) Submit(ctx context.Context, tx *transactionrecord.Transaction) (*Pending, error) {
	id, err := c.Backend.Submit(ctx, tx.Pack())
	if nil != err {
		return nil, err
	}
	return &Pending{
		Id:      id,
		Message: tx.Message,
		client:  c,
	}, nil
}

// SignAndSubmit - build a transaction with the account's next nonce,
// sign and send it
func (c *Client) SignAndSubmit(ctx context.Context, keyPair *account.KeyPair, message transactionrecord.Message, fee uint64) (*Pending, error) {
	genesisHash, err := c.Backend.GenesisHash(ctx)
	if nil != err {
		return nil, err
	}
	nonce, err := c.Backend.AccountNonce(ctx, keyPair.Account())
	if nil != err {
		return nil, err
	}

	tx := &transactionrecord.Transaction{
		Message:     message,
		Author:      keyPair.Account(),
		Nonce:       nonce,
		GenesisHash: genesisHash,
		Fee:         fee,
	}
	tx.Sign(keyPair)
	return c.Submit(ctx, tx)
}

// Apply - SignAndSubmit then Wait
func (c *Client) Apply(ctx context.Context, keyPair *account.KeyPair, message transactionrecord.Message, fee uint64) (*TransactionApplied, error) {
	pending, err := c.SignAndSubmit(ctx, keyPair, message, fee)
	if nil != err {
		return nil, err
	}
	return pending.Wait(ctx)
}

// CheckpointId - the id CreateCheckpoint assigns to (parent, hash)
func CheckpointId(parent *digest.Digest, projectHash digest.Digest) digest.Digest {
	return checkpoint.Id(parent, projectHash)
}

// Wait - block until the transaction is included
//
// for an included transaction whose message failed, both the applied
// record and the registry error are returned; cancelling ctx only
// stops waiting
func (p *Pending) Wait(ctx context.Context) (*TransactionApplied, error) {
	ticker := time.NewTicker(p.client.pollInterval)
	defer ticker.Stop()

	for {
		status, err := p.client.Backend.Status(ctx, p.Id)
		if nil != err {
			return nil, err
		}

		switch status.State {
		case query.StateIncluded:
			return p.applied(status)
		case query.StateExpired:
			return nil, fault.TransactionExpired
		case query.StateRejected:
			return nil, fault.Lookup(status.Error)
		case query.StatePending:
		default:
			return nil, fault.StreamTerminated
		}

		if err := ctx.Err(); nil != err {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Pending) applied(status *query.Status) (*TransactionApplied, error) {
	applied := &TransactionApplied{
		Id:          p.Id,
		BlockNumber: status.BlockNumber,
		BlockHash:   status.BlockHash,
		Position:    status.Position,
	}
	for _, record := range status.Events {
		if status.Position == record.TxIndex {
			applied.Events = append(applied.Events, record.Event)
		}
	}

	result, err := ResultFromEvents(p.Message, status.Events, status.Position)
	if nil != err {
		return applied, err
	}
	applied.Result = result
	return applied, nil
}
