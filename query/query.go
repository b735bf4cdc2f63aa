// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package query - read only views of registry state shared by the
// RPC services and the in-memory client
package query

import (
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/event"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
)

// OrgEntry - an org and its id
type OrgEntry struct {
	Id  identifier.Id `json:"id"`
	Org *state.Org    `json:"org"`
}

// UserEntry - a user and its id
type UserEntry struct {
	Id   identifier.Id `json:"id"`
	User *state.User   `json:"user"`
}

// ListOrgs - every live org
func ListOrgs(r storage.Reader) ([]OrgEntry, error) {
	result := []OrgEntry{}
	err := state.IterateOrgs(r, func(id identifier.Id, org *state.Org) error {
		result = append(result, OrgEntry{Id: id, Org: org})
		return nil
	})
	return result, err
}

// ListUsers - every live user
func ListUsers(r storage.Reader) ([]UserEntry, error) {
	result := []UserEntry{}
	err := state.IterateUsers(r, func(id identifier.Id, user *state.User) error {
		result = append(result, UserEntry{Id: id, User: user})
		return nil
	})
	return result, err
}

// ListProjects - every project, or those of one domain if domain is not nil
func ListProjects(r storage.Reader, domain *identifier.Domain) ([]*state.Project, error) {
	result := []*state.Project{}
	err := state.IterateProjects(r, func(project *state.Project) error {
		if nil == domain || *domain == project.Domain {
			result = append(result, project)
		}
		return nil
	})
	return result, err
}

// transaction states
const (
	StateUnknown  = "Unknown"
	StatePending  = "Pending"
	StateIncluded = "Included"
	StateExpired  = "Expired"
	StateRejected = "Rejected"
)

// Status - what happened to a submitted transaction
//
// for an included transaction Events holds every event of its block
type Status struct {
	State       string        `json:"state"`
	Error       string        `json:"error,omitempty"`
	BlockNumber uint64        `json:"blockNumber,string"`
	BlockHash   digest.Digest `json:"blockHash"`
	Position    uint64        `json:"position"`
	Events      event.Records `json:"events"`
}

// Included - the status of an included transaction
func Included(r storage.Reader, id digest.Digest) (*Status, bool, error) {
	location, found := block.TransactionLocation(r, id)
	if !found {
		return nil, false, nil
	}
	b, err := block.Get(r, location.BlockNumber)
	if nil != err {
		return nil, false, err
	}
	records, err := block.Events(r, location.BlockNumber)
	if nil != err {
		return nil, false, err
	}
	return &Status{
		State:       StateIncluded,
		BlockNumber: location.BlockNumber,
		BlockHash:   b.Hash(),
		Position:    location.Position,
		Events:      records,
	}, true, nil
}
