// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"context"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/query"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// Backend - access to one chain
//
// the Get methods return nil without error for absent records
type Backend interface {
	Submit(ctx context.Context, packed transactionrecord.Packed) (digest.Digest, error)
	Status(ctx context.Context, id digest.Digest) (*query.Status, error)

	GenesisHash(ctx context.Context) (digest.Digest, error)
	AccountNonce(ctx context.Context, a account.Account) (uint64, error)
	FreeBalance(ctx context.Context, a account.Account) (uint64, error)

	GetOrg(ctx context.Context, id identifier.Id) (*state.Org, error)
	ListOrgs(ctx context.Context) ([]query.OrgEntry, error)
	GetUser(ctx context.Context, id identifier.Id) (*state.User, error)
	ListUsers(ctx context.Context) ([]query.UserEntry, error)
	GetProject(ctx context.Context, projectId identifier.ProjectId) (*state.Project, error)
	ListProjects(ctx context.Context, domain *identifier.Domain) ([]*state.Project, error)
	GetCheckpoint(ctx context.Context, id digest.Digest) (*state.Checkpoint, error)

	Close() error
}
