// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/client"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/rpc/node"
)

type infoSource interface {
	Info(ctx context.Context) (*node.InfoReply, error)
}

type genesisResult struct {
	GenesisHash digest.Digest `json:"genesisHash"`
}

type balanceResult struct {
	Account account.Account `json:"account"`
	Balance uint64          `json:"balance,string"`
}

type nonceResult struct {
	Account account.Account `json:"account"`
	Nonce   uint64          `json:"nonce,string"`
}

// run f with a connected backend and print its result
func (s *session) query(c *cli.Context, f func(ctx context.Context, backend client.Backend) (interface{}, error)) error {
	backend, err := s.connect(c)
	if nil != err {
		return err
	}

	ctx, cancel := s.context(c)
	defer cancel()

	result, err := f(ctx, backend)
	if nil != err {
		return err
	}
	return printJson(s.w, result)
}

func (s *session) runInfo(c *cli.Context) error {
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		if source, ok := backend.(infoSource); ok {
			return source.Info(ctx)
		}
		genesisHash, err := backend.GenesisHash(ctx)
		return genesisResult{GenesisHash: genesisHash}, err
	})
}

func (s *session) runBalance(c *cli.Context) error {
	a, err := s.accountArgument(c, 0)
	if nil != err {
		return err
	}
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		balance, err := backend.FreeBalance(ctx, a)
		return balanceResult{Account: a, Balance: balance}, err
	})
}

func (s *session) runNonce(c *cli.Context) error {
	a, err := s.accountArgument(c, 0)
	if nil != err {
		return err
	}
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		nonce, err := backend.AccountNonce(ctx, a)
		return nonceResult{Account: a, Nonce: nonce}, err
	})
}

func (s *session) runStatus(c *cli.Context) error {
	id, err := digestArgument(c, 0)
	if nil != err {
		return err
	}
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		return backend.Status(ctx, id)
	})
}

func (s *session) runOrgList(c *cli.Context) error {
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		return backend.ListOrgs(ctx)
	})
}

func (s *session) runOrgShow(c *cli.Context) error {
	id, err := idArgument(c, 0)
	if nil != err {
		return err
	}
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		org, err := backend.GetOrg(ctx, id)
		if nil == err && nil == org {
			return nil, fault.InexistentOrg
		}
		return org, err
	})
}

func (s *session) runUserList(c *cli.Context) error {
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		return backend.ListUsers(ctx)
	})
}

func (s *session) runUserShow(c *cli.Context) error {
	id, err := idArgument(c, 0)
	if nil != err {
		return err
	}
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		user, err := backend.GetUser(ctx, id)
		if nil == err && nil == user {
			return nil, fault.InexistentUser
		}
		return user, err
	})
}

func (s *session) runProjectList(c *cli.Context) error {
	var domain *identifier.Domain
	if text := c.String("domain"); "" != text {
		d, err := identifier.ParseDomain(text)
		if nil != err {
			return err
		}
		domain = &d
	}
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		return backend.ListProjects(ctx, domain)
	})
}

func (s *session) runProjectShow(c *cli.Context) error {
	projectId, err := projectArgument(c, 0)
	if nil != err {
		return err
	}
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		project, err := backend.GetProject(ctx, projectId)
		if nil == err && nil == project {
			return nil, fault.InexistentProjectId
		}
		return project, err
	})
}

func (s *session) runCheckpointShow(c *cli.Context) error {
	id, err := digestArgument(c, 0)
	if nil != err {
		return err
	}
	return s.query(c, func(ctx context.Context, backend client.Backend) (interface{}, error) {
		checkpoint, err := backend.GetCheckpoint(ctx, id)
		if nil == err && nil == checkpoint {
			return nil, fault.InexistentCheckpointId
		}
		return checkpoint, err
	})
}
