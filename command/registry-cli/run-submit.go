// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/client"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
	tr "github.com/bitmark-inc/registryd/transactionrecord"
)

func (s *session) runTransfer(c *cli.Context) error {
	recipient, err := recipientArgument(c, 0)
	if nil != err {
		return err
	}
	amount, err := amountArgument(c, 1)
	if nil != err {
		return err
	}
	return s.apply(c, &tr.Transfer{
		Recipient: recipient,
		Balance:   amount,
	})
}

func (s *session) runOrgRegister(c *cli.Context) error {
	id, err := idArgument(c, 0)
	if nil != err {
		return err
	}
	return s.apply(c, &tr.RegisterOrg{OrgId: id})
}

func (s *session) runOrgUnregister(c *cli.Context) error {
	id, err := idArgument(c, 0)
	if nil != err {
		return err
	}
	return s.apply(c, &tr.UnregisterOrg{OrgId: id})
}

func (s *session) runOrgAddMember(c *cli.Context) error {
	orgId, err := idArgument(c, 0)
	if nil != err {
		return err
	}
	userId, err := idArgument(c, 1)
	if nil != err {
		return err
	}
	return s.apply(c, &tr.RegisterMember{OrgId: orgId, UserId: userId})
}

func (s *session) runOrgTransfer(c *cli.Context) error {
	orgId, err := idArgument(c, 0)
	if nil != err {
		return err
	}
	recipient, err := recipientArgument(c, 1)
	if nil != err {
		return err
	}
	amount, err := amountArgument(c, 2)
	if nil != err {
		return err
	}
	return s.apply(c, &tr.TransferFromOrg{
		OrgId:     orgId,
		Recipient: recipient,
		Value:     amount,
	})
}

func (s *session) runUserRegister(c *cli.Context) error {
	id, err := idArgument(c, 0)
	if nil != err {
		return err
	}
	return s.apply(c, &tr.RegisterUser{UserId: id})
}

func (s *session) runUserUnregister(c *cli.Context) error {
	id, err := idArgument(c, 0)
	if nil != err {
		return err
	}
	return s.apply(c, &tr.UnregisterUser{UserId: id})
}

func (s *session) runProjectRegister(c *cli.Context) error {
	projectId, err := projectArgument(c, 0)
	if nil != err {
		return err
	}
	checkpointId, err := digestArgument(c, 1)
	if nil != err {
		return err
	}
	metadata, err := identifier.NewBytes128([]byte(c.String("metadata")))
	if nil != err {
		return err
	}
	return s.apply(c, &tr.RegisterProject{
		ProjectName:   projectId.Name,
		ProjectDomain: projectId.Domain,
		CheckpointId:  checkpointId,
		Metadata:      metadata,
	})
}

func (s *session) runProjectSetCheckpoint(c *cli.Context) error {
	projectId, err := projectArgument(c, 0)
	if nil != err {
		return err
	}
	checkpointId, err := digestArgument(c, 1)
	if nil != err {
		return err
	}
	return s.apply(c, &tr.SetCheckpoint{
		ProjectName:     projectId.Name,
		ProjectDomain:   projectId.Domain,
		NewCheckpointId: checkpointId,
	})
}

// the new checkpoint id is part of the output for use in a following
// register or set-checkpoint
func (s *session) runCheckpointCreate(c *cli.Context) error {
	var projectHash digest.Digest
	if fileName := c.String("file"); "" != fileName {
		data, err := os.ReadFile(fileName)
		if nil != err {
			return err
		}
		projectHash = digest.NewDigest(data)
	} else {
		d, err := digestArgument(c, 0)
		if nil != err {
			return err
		}
		projectHash = d
	}

	var parent *digest.Digest
	if text := c.String("parent"); "" != text {
		d, err := digest.FromHex(text)
		if nil != err {
			return err
		}
		parent = &d
	}

	checkpointId := client.CheckpointId(parent, projectHash)
	item, err := s.applyItem(c, &tr.CreateCheckpoint{
		ProjectHash:          projectHash,
		PreviousCheckpointId: parent,
	})
	if nil != item {
		item.CheckpointId = &checkpointId
		if perr := printJson(s.w, item); nil != perr {
			return perr
		}
	}
	return err
}

// argument at index as a Base58 account
func recipientArgument(c *cli.Context, index int) (account.Account, error) {
	if c.NArg() <= index {
		return account.Account{}, fault.MissingParameters
	}
	return account.FromBase58(c.Args().Get(index))
}
