// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package producer - makes blocks from the pending pool
package producer

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/reservoir"
)

// DefaultInterval - time between blocks
const DefaultInterval = 2 * time.Second

// Producer - background block maker
type Producer struct {
	sync.RWMutex
	log      *logger.L
	executor *block.Executor
	pool     *reservoir.Reservoir
	author   *account.Account
	interval time.Duration
}

// New - create a producer, author may be nil
func New(log *logger.L, executor *block.Executor, pool *reservoir.Reservoir, author *account.Account, interval time.Duration) *Producer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Producer{
		log:      log,
		executor: executor,
		pool:     pool,
		author:   author,
		interval: interval,
	}
}

// SetAuthor - change the account receiving fee rewards of later blocks
func (p *Producer) SetAuthor(author *account.Account) {
	p.Lock()
	p.author = author
	p.Unlock()
}

// Author - the current block author, nil if fees are burned
func (p *Producer) Author() *account.Account {
	p.RLock()
	defer p.RUnlock()
	return p.author
}

// errors after which a transaction can never be included
func permanent(err error) bool {
	switch err {
	case fault.NonceTooHigh, fault.InsufficientBalance:
		return false
	default:
		return true
	}
}

// Produce - apply one block of pending transactions
//
// returns nil if nothing was pending
func (p *Producer) Produce() (*block.Block, error) {
	transactions := p.pool.Fetch(block.MaximumTransactions)
	if 0 == len(transactions) {
		return nil, nil
	}

	b, rejected, err := p.executor.ApplyBlock(p.Author(), uint64(time.Now().Unix()), transactions)
	if nil != err {
		return nil, err
	}

	done := make([]digest.Digest, 0, len(b.Transactions))
	for _, packed := range b.Transactions {
		done = append(done, packed.Id())
	}
	p.pool.Remove(done)
	for _, r := range rejected {
		if permanent(r.Err) {
			p.log.Warnf("dropped: %s  error: %s", r.Id, r.Err)
			p.pool.Reject(r.Id, r.Err)
		}
	}

	return b, nil
}

// Run - background process producing blocks until shutdown
func (p *Producer) Run(args interface{}, shutdown <-chan struct{}) {
	p.log.Infof("starting…  interval: %s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			p.pool.Expire()
			b, err := p.Produce()
			if nil != err {
				p.log.Errorf("produce error: %s", err)
			} else if nil != b {
				p.log.Debugf("produced block: %d", b.Number)
			}
		}
	}

	p.log.Info("stopped")
}
