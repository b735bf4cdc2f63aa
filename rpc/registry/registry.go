// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - RPC queries of orgs, users, projects and checkpoints
//
// records that do not exist are returned as null
package registry

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/query"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
)

const (
	rateLimitRegistry = 200
	rateBurstRegistry = 100
)

// Registry - an RPC entry for state queries
type Registry struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Store   *storage.Store
}

// IdArguments - an org or user id
type IdArguments struct {
	Id identifier.Id `json:"id"`
}

// ProjectArguments - a project id
type ProjectArguments struct {
	Project identifier.ProjectId `json:"project"`
}

// ListProjectsArguments - optional domain filter
type ListProjectsArguments struct {
	Domain *identifier.Domain `json:"domain"`
}

// CheckpointArguments - a checkpoint id
type CheckpointArguments struct {
	Id digest.Digest `json:"id"`
}

// ListArguments - no parameters
type ListArguments struct{}

// OrgReply - an org or null
type OrgReply struct {
	Org *state.Org `json:"org"`
}

// OrgsReply - all orgs
type OrgsReply struct {
	Orgs []query.OrgEntry `json:"orgs"`
}

// UserReply - a user or null
type UserReply struct {
	User *state.User `json:"user"`
}

// UsersReply - all users
type UsersReply struct {
	Users []query.UserEntry `json:"users"`
}

// ProjectReply - a project or null
type ProjectReply struct {
	Project *state.Project `json:"project"`
}

// ProjectsReply - matching projects
type ProjectsReply struct {
	Projects []*state.Project `json:"projects"`
}

// CheckpointReply - a checkpoint or null
type CheckpointReply struct {
	Checkpoint *state.Checkpoint `json:"checkpoint"`
}

// New - create the service
func New(log *logger.L, store *storage.Store) *Registry {
	return &Registry{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitRegistry, rateBurstRegistry),
		Store:   store,
	}
}

// run f on a snapshot of committed state
func (reg *Registry) view(f func(r storage.Reader) error) error {
	if err := ratelimit.Limit(reg.Limiter); nil != err {
		return err
	}
	snapshot, err := reg.Store.Snapshot()
	if nil != err {
		return err
	}
	defer snapshot.Release()
	return f(snapshot)
}

// GetOrg - one org
func (reg *Registry) GetOrg(arguments *IdArguments, reply *OrgReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	return reg.view(func(r storage.Reader) error {
		if org, found := state.GetOrg(r, arguments.Id); found {
			reply.Org = org
		}
		return nil
	})
}

// ListOrgs - all orgs
func (reg *Registry) ListOrgs(arguments *ListArguments, reply *OrgsReply) error {
	return reg.view(func(r storage.Reader) error {
		orgs, err := query.ListOrgs(r)
		reply.Orgs = orgs
		return err
	})
}

// GetUser - one user
func (reg *Registry) GetUser(arguments *IdArguments, reply *UserReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	return reg.view(func(r storage.Reader) error {
		if user, found := state.GetUser(r, arguments.Id); found {
			reply.User = user
		}
		return nil
	})
}

// ListUsers - all users
func (reg *Registry) ListUsers(arguments *ListArguments, reply *UsersReply) error {
	return reg.view(func(r storage.Reader) error {
		users, err := query.ListUsers(r)
		reply.Users = users
		return err
	})
}

// GetProject - one project
func (reg *Registry) GetProject(arguments *ProjectArguments, reply *ProjectReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	return reg.view(func(r storage.Reader) error {
		if project, found := state.GetProject(r, arguments.Project); found {
			reply.Project = project
		}
		return nil
	})
}

// ListProjects - all projects, or those of one domain
func (reg *Registry) ListProjects(arguments *ListProjectsArguments, reply *ProjectsReply) error {
	var domain *identifier.Domain
	if nil != arguments {
		domain = arguments.Domain
	}
	return reg.view(func(r storage.Reader) error {
		projects, err := query.ListProjects(r, domain)
		reply.Projects = projects
		return err
	})
}

// GetCheckpoint - one checkpoint
func (reg *Registry) GetCheckpoint(arguments *CheckpointArguments, reply *CheckpointReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	return reg.view(func(r storage.Reader) error {
		if c, found := state.GetCheckpoint(r, arguments.Id); found {
			reply.Checkpoint = c
		}
		return nil
	})
}
