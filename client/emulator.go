// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/genesis"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/query"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// Emulator - an in-memory chain that applies one block per submission
//
// blocks have no author so the whole fee is burned
type Emulator struct {
	log      *logger.L
	store    *storage.Store
	executor *block.Executor
}

// NewEmulator - a fresh local chain with the development accounts endowed
func NewEmulator(log *logger.L) (*Emulator, error) {
	return NewEmulatorWith(log, genesis.DevelopmentParameters(chain.Local, uint64(time.Now().Unix())))
}

// NewEmulatorWith - a fresh chain from the given genesis
func NewEmulatorWith(log *logger.L, parameters genesis.Parameters) (*Emulator, error) {
	store, err := storage.OpenMemory()
	if nil != err {
		return nil, err
	}
	if _, err := genesis.Initialise(store, parameters); nil != err {
		_ = store.Close()
		return nil, err
	}
	executor, err := block.NewExecutor(log, store)
	if nil != err {
		_ = store.Close()
		return nil, err
	}
	return &Emulator{
		log:      log,
		store:    store,
		executor: executor,
	}, nil
}

// Submit - apply the transaction as a block of its own
//
// a rejected transaction returns its error and no block is made
func (e *Emulator) Submit(ctx context.Context, packed transactionrecord.Packed) (digest.Digest, error) {
	if err := ctx.Err(); nil != err {
		return digest.Digest{}, err
	}
	if _, err := e.executor.Validate(packed); nil != err {
		return digest.Digest{}, err
	}
	_, rejected, err := e.executor.ApplyBlock(nil, uint64(time.Now().Unix()), []transactionrecord.Packed{packed})
	if nil != err {
		return digest.Digest{}, err
	}
	if 0 != len(rejected) {
		return digest.Digest{}, rejected[0].Err
	}
	return packed.Id(), nil
}

// Status - every accepted transaction is already included
func (e *Emulator) Status(ctx context.Context, id digest.Digest) (*query.Status, error) {
	var status *query.Status
	err := e.view(ctx, func(r storage.Reader) error {
		s, found, err := query.Included(r, id)
		if nil != err {
			return err
		}
		if !found {
			s = &query.Status{State: query.StateUnknown}
		}
		status = s
		return nil
	})
	return status, err
}

// GenesisHash - hash of block zero
func (e *Emulator) GenesisHash(ctx context.Context) (digest.Digest, error) {
	return e.executor.GenesisHash(), ctx.Err()
}

// AccountNonce - nonce for the account's next transaction
func (e *Emulator) AccountNonce(ctx context.Context, a account.Account) (uint64, error) {
	var nonce uint64
	err := e.view(ctx, func(r storage.Reader) error {
		nonce = state.Nonce(r, a)
		return nil
	})
	return nonce, err
}

// FreeBalance - spendable balance
func (e *Emulator) FreeBalance(ctx context.Context, a account.Account) (uint64, error) {
	var balance uint64
	err := e.view(ctx, func(r storage.Reader) error {
		balance = state.FreeBalance(r, a)
		return nil
	})
	return balance, err
}

// GetOrg - an org or nil
func (e *Emulator) GetOrg(ctx context.Context, id identifier.Id) (*state.Org, error) {
	var org *state.Org
	err := e.view(ctx, func(r storage.Reader) error {
		org, _ = state.GetOrg(r, id)
		return nil
	})
	return org, err
}

// ListOrgs - all orgs
func (e *Emulator) ListOrgs(ctx context.Context) ([]query.OrgEntry, error) {
	var orgs []query.OrgEntry
	err := e.view(ctx, func(r storage.Reader) error {
		var err error
		orgs, err = query.ListOrgs(r)
		return err
	})
	return orgs, err
}

// GetUser - a user or nil
func (e *Emulator) GetUser(ctx context.Context, id identifier.Id) (*state.User, error) {
	var user *state.User
	err := e.view(ctx, func(r storage.Reader) error {
		user, _ = state.GetUser(r, id)
		return nil
	})
	return user, err
}

// ListUsers - all users
func (e *Emulator) ListUsers(ctx context.Context) ([]query.UserEntry, error) {
	var users []query.UserEntry
	err := e.view(ctx, func(r storage.Reader) error {
		var err error
		users, err = query.ListUsers(r)
		return err
	})
	return users, err
}

// GetProject - a project or nil
func (e *Emulator) GetProject(ctx context.Context, projectId identifier.ProjectId) (*state.Project, error) {
	var project *state.Project
	err := e.view(ctx, func(r storage.Reader) error {
		project, _ = state.GetProject(r, projectId)
		return nil
	})
	return project, err
}

// ListProjects - all projects, or those of one domain
func (e *Emulator) ListProjects(ctx context.Context, domain *identifier.Domain) ([]*state.Project, error) {
	var projects []*state.Project
	err := e.view(ctx, func(r storage.Reader) error {
		var err error
		projects, err = query.ListProjects(r, domain)
		return err
	})
	return projects, err
}

// GetCheckpoint - a checkpoint or nil
func (e *Emulator) GetCheckpoint(ctx context.Context, id digest.Digest) (*state.Checkpoint, error) {
	var c *state.Checkpoint
	err := e.view(ctx, func(r storage.Reader) error {
		c, _ = state.GetCheckpoint(r, id)
		return nil
	})
	return c, err
}

// Close - discard the chain
func (e *Emulator) Close() error {
	return e.store.Close()
}

func (e *Emulator) view(ctx context.Context, f func(r storage.Reader) error) error {
	if err := ctx.Err(); nil != err {
		return err
	}
	snapshot, err := e.store.Snapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()
	return f(snapshot)
}
