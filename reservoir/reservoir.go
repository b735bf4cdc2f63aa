// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - transactions waiting to be included in a block
//
// transactions are validated on entry and expire if they are not
// included in time
package reservoir

import (
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// DefaultExpiry - how long a transaction may wait
const DefaultExpiry = 2 * time.Hour

// expired and rejected ids are remembered for this long so that
// waiting clients see why their transaction went away
const finishedMemory = 10 * time.Minute

// Validator - admission check of a new transaction
type Validator interface {
	Validate(packed transactionrecord.Packed) (*transactionrecord.Transaction, error)
}

// Status - state of a transaction id in the reservoir
type Status int

// possible states
const (
	StatusUnknown Status = iota
	StatusPending
	StatusExpired
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusExpired:
		return "Expired"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

type item struct {
	packed   transactionrecord.Packed
	tx       *transactionrecord.Transaction
	sequence uint64
	expires  time.Time
}

// Reservoir - the pending pool
type Reservoir struct {
	sync.Mutex

	log       *logger.L
	validator Validator
	expiry    time.Duration
	pending   *cache.Cache
	finished  *cache.Cache
	sequence  uint64
}

// New - create an empty pool
func New(log *logger.L, validator Validator, expiry time.Duration) *Reservoir {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	r := &Reservoir{
		log:       log,
		validator: validator,
		expiry:    expiry,
		pending:   cache.New(expiry, expiry/4+time.Second),
		finished:  cache.New(finishedMemory, finishedMemory/2),
	}
	// also called by Delete, so check the item really expired
	r.pending.OnEvicted(func(key string, value interface{}) {
		if time.Now().Before(value.(*item).expires) {
			return
		}
		r.log.Debugf("expired: %s", key)
		r.finished.SetDefault(key, fault.TransactionExpired)
	})
	return r
}

// Store - validate and add a transaction
func (r *Reservoir) Store(packed transactionrecord.Packed) (digest.Digest, error) {
	tx, err := r.validator.Validate(packed)
	if nil != err {
		return digest.Digest{}, err
	}
	id := packed.Id()

	r.Lock()
	defer r.Unlock()

	r.sequence += 1
	stored := &item{
		packed:   packed,
		tx:       tx,
		sequence: r.sequence,
		expires:  time.Now().Add(r.expiry),
	}
	if err := r.pending.Add(id.String(), stored, cache.DefaultExpiration); nil != err {
		return id, fault.TransactionDuplicate
	}
	r.finished.Delete(id.String())

	r.log.Infof("stored: %s  author: %s  nonce: %d", id, tx.Author, tx.Nonce)
	return id, nil
}

// Fetch - up to count transactions in inclusion order
//
// an author's transactions are in nonce order, otherwise first come
// first served
func (r *Reservoir) Fetch(count int) []transactionrecord.Packed {
	r.Lock()
	defer r.Unlock()

	items := make([]*item, 0, r.pending.ItemCount())
	for _, v := range r.pending.Items() {
		items = append(items, v.Object.(*item))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].sequence < items[j].sequence
	})

	// each author keeps its arrival slots, filled in nonce order
	slots := make(map[account.Account][]int)
	for i, v := range items {
		slots[v.tx.Author] = append(slots[v.tx.Author], i)
	}
	ordered := make([]*item, len(items))
	for _, positions := range slots {
		group := make([]*item, len(positions))
		for k, i := range positions {
			group[k] = items[i]
		}
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].tx.Nonce < group[b].tx.Nonce
		})
		for k, i := range positions {
			ordered[i] = group[k]
		}
	}
	items = ordered
	if count >= 0 && len(items) > count {
		items = items[:count]
	}

	result := make([]transactionrecord.Packed, len(items))
	for i, v := range items {
		result[i] = v.packed
	}
	return result
}

// Remove - drop transactions that were included
func (r *Reservoir) Remove(ids []digest.Digest) {
	r.Lock()
	defer r.Unlock()

	for _, id := range ids {
		r.pending.Delete(id.String())
	}
}

// Reject - drop a transaction that can never be included
func (r *Reservoir) Reject(id digest.Digest, err error) {
	r.Lock()
	defer r.Unlock()

	r.pending.Delete(id.String())
	r.finished.SetDefault(id.String(), err)
}

// Status - whether the id is waiting, and why it went away
func (r *Reservoir) Status(id digest.Digest) (Status, error) {
	if _, found := r.pending.Get(id.String()); found {
		return StatusPending, nil
	}
	if value, found := r.finished.Get(id.String()); found {
		err := value.(error)
		if fault.TransactionExpired == err {
			return StatusExpired, err
		}
		return StatusRejected, err
	}
	return StatusUnknown, nil
}

// Count - number of waiting transactions
func (r *Reservoir) Count() int {
	return r.pending.ItemCount()
}

// Expire - remove expired transactions now
func (r *Reservoir) Expire() {
	r.pending.DeleteExpired()
}
