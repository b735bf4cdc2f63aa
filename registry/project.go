// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/checkpoint"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// check the author may act for a domain
func authorise(r storage.Reader, domain identifier.Domain, author account.Account) error {
	if domain.IsOrg() {
		_, err := memberOrg(r, domain.Id, author)
		return err
	}
	_, err := ownedUser(r, domain.Id, author)
	return err
}

// the checkpoint is recorded as given: it need not exist yet, a later
// SetCheckpoint is checked for ancestry against it
func registerProject(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.RegisterProject)

	projectId := identifier.ProjectId{Name: m.ProjectName, Domain: m.ProjectDomain}
	if _, found := state.GetProject(w, projectId); found {
		return nil, fault.DuplicateProjectId
	}
	if err := authorise(w, m.ProjectDomain, author); nil != err {
		return nil, err
	}

	project := &state.Project{
		Name:              m.ProjectName,
		Domain:            m.ProjectDomain,
		CurrentCheckpoint: m.CheckpointId,
		Metadata:          m.Metadata,
	}
	state.PutProject(w, project)
	state.PutInitialCheckpoint(w, projectId, m.CheckpointId)

	if m.ProjectDomain.IsOrg() {
		org, found := state.GetOrg(w, m.ProjectDomain.Id)
		if !found {
			logger.Panicf("registry: org: %q vanished", m.ProjectDomain.Id)
		}
		org.Projects = append(org.Projects, m.ProjectName)
		state.PutOrg(w, m.ProjectDomain.Id, org)
	} else {
		user, found := state.GetUser(w, m.ProjectDomain.Id)
		if !found {
			logger.Panicf("registry: user: %q vanished", m.ProjectDomain.Id)
		}
		user.Projects = append(user.Projects, m.ProjectName)
		state.PutUser(w, m.ProjectDomain.Id, user)
	}

	return &event.ProjectRegistered{ProjectName: m.ProjectName, ProjectDomain: m.ProjectDomain}, nil
}

func setCheckpoint(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.SetCheckpoint)

	if _, found := state.GetCheckpoint(w, m.NewCheckpointId); !found {
		return nil, fault.InexistentCheckpointId
	}
	projectId := identifier.ProjectId{Name: m.ProjectName, Domain: m.ProjectDomain}
	project, found := state.GetProject(w, projectId)
	if !found {
		return nil, fault.InexistentProjectId
	}
	if err := authorise(w, m.ProjectDomain, author); nil != err {
		return nil, err
	}
	initial, found := state.GetInitialCheckpoint(w, projectId)
	if !found {
		return nil, fault.InexistentInitialProjectCheckpoint
	}
	if !checkpoint.DescendsFrom(w, m.NewCheckpointId, initial) {
		return nil, fault.InvalidCheckpointAncestry
	}

	project.CurrentCheckpoint = m.NewCheckpointId
	state.PutProject(w, project)

	return &event.CheckpointSet{
		ProjectName:   m.ProjectName,
		ProjectDomain: m.ProjectDomain,
		CheckpointId:  m.NewCheckpointId,
	}, nil
}

func createCheckpoint(w storage.Writer, ctx *BlockContext, author account.Account, message transactionrecord.Message) (event.Event, error) {
	m := message.(*transactionrecord.CreateCheckpoint)

	id, err := checkpoint.Create(w, m.PreviousCheckpointId, m.ProjectHash)
	if nil != err {
		return nil, err
	}

	return &event.CheckpointCreated{CheckpointId: id}, nil
}
