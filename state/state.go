// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/storage"
)

func errCorrupt(r *codec.Reader) error {
	if nil != r.Err() {
		return r.Err()
	}
	return fault.CorruptRecord
}

// Orgs
// ----

// GetOrg - the live org with this id
func GetOrg(r storage.Reader, id identifier.Id) (*Org, bool) {
	buffer, found := r.Get(storage.Pool.Orgs, IdKey(id))
	if !found {
		return nil, false
	}
	org, err := UnpackOrg(buffer)
	if nil != err {
		logger.Panicf("state: org: %q corrupt record: %s", id, err)
	}
	return org, true
}

// PutOrg - insert or replace an org
//
// the membership index follows the member list
func PutOrg(w storage.Writer, id identifier.Id, org *Org) {
	if old, found := GetOrg(w, id); found {
		for _, m := range old.Members {
			if !org.HasMember(m) {
				w.Delete(storage.Pool.Memberships, MembershipKey(m, id))
			}
		}
	}
	for _, m := range org.Members {
		w.Put(storage.Pool.Memberships, MembershipKey(m, id), []byte{})
	}
	w.Put(storage.Pool.Orgs, IdKey(id), org.Pack())
}

// RemoveOrg - delete an org, a missing org is a no-op
func RemoveOrg(w storage.Writer, id identifier.Id) {
	old, found := GetOrg(w, id)
	if !found {
		return
	}
	for _, m := range old.Members {
		w.Delete(storage.Pool.Memberships, MembershipKey(m, id))
	}
	w.Delete(storage.Pool.Orgs, IdKey(id))
}

// IterateOrgs - run a function on every org
func IterateOrgs(r storage.Reader, f func(id identifier.Id, org *Org) error) error {
	return r.Iterate(storage.Pool.Orgs, func(key []byte, value []byte) error {
		id, err := DecodeIdKey(key)
		if nil != err {
			return err
		}
		org, err := UnpackOrg(value)
		if nil != err {
			return err
		}
		return f(id, org)
	})
}

// OrgsOfUser - ids of every org the user is a member of
func OrgsOfUser(r storage.Reader, userId identifier.Id) ([]identifier.Id, error) {
	orgs := []identifier.Id{}
	err := r.IteratePrefix(storage.Pool.Memberships, IdKey(userId), func(key []byte, value []byte) error {
		_, orgId, err := DecodeMembershipKey(key)
		if nil != err {
			return err
		}
		orgs = append(orgs, orgId)
		return nil
	})
	return orgs, err
}

// Users
// -----

// GetUser - the live user with this id
func GetUser(r storage.Reader, id identifier.Id) (*User, bool) {
	buffer, found := r.Get(storage.Pool.Users, IdKey(id))
	if !found {
		return nil, false
	}
	user, err := UnpackUser(buffer)
	if nil != err {
		logger.Panicf("state: user: %q corrupt record: %s", id, err)
	}
	return user, true
}

// PutUser - insert or replace a user
//
// the account index follows the account
func PutUser(w storage.Writer, id identifier.Id, user *User) {
	if old, found := GetUser(w, id); found && old.Account != user.Account {
		w.Delete(storage.Pool.AccountUsers, old.Account[:])
	}
	w.Put(storage.Pool.AccountUsers, user.Account[:], IdKey(id))
	w.Put(storage.Pool.Users, IdKey(id), user.Pack())
}

// RemoveUser - delete a user, a missing user is a no-op
func RemoveUser(w storage.Writer, id identifier.Id) {
	old, found := GetUser(w, id)
	if !found {
		return
	}
	w.Delete(storage.Pool.AccountUsers, old.Account[:])
	w.Delete(storage.Pool.Users, IdKey(id))
}

// IterateUsers - run a function on every user
func IterateUsers(r storage.Reader, f func(id identifier.Id, user *User) error) error {
	return r.Iterate(storage.Pool.Users, func(key []byte, value []byte) error {
		id, err := DecodeIdKey(key)
		if nil != err {
			return err
		}
		user, err := UnpackUser(value)
		if nil != err {
			return err
		}
		return f(id, user)
	})
}

// UserOfAccount - the user associated with an account
func UserOfAccount(r storage.Reader, a account.Account) (identifier.Id, bool) {
	key, found := r.Get(storage.Pool.AccountUsers, a[:])
	if !found {
		return "", false
	}
	id, err := DecodeIdKey(key)
	if nil != err {
		logger.Panicf("state: account: %s corrupt user index: %s", a, err)
	}
	return id, true
}

// Projects
// --------

// GetProject - the project with this id
func GetProject(r storage.Reader, projectId identifier.ProjectId) (*Project, bool) {
	buffer, found := r.Get(storage.Pool.Projects, ProjectKey(projectId))
	if !found {
		return nil, false
	}
	project, err := UnpackProject(buffer)
	if nil != err {
		logger.Panicf("state: project: %s corrupt record: %s", projectId, err)
	}
	return project, true
}

// PutProject - insert or replace a project
func PutProject(w storage.Writer, project *Project) {
	projectId := identifier.ProjectId{Name: project.Name, Domain: project.Domain}
	w.Put(storage.Pool.Projects, ProjectKey(projectId), project.Pack())
}

// IterateProjects - run a function on every project
func IterateProjects(r storage.Reader, f func(project *Project) error) error {
	return r.Iterate(storage.Pool.Projects, func(key []byte, value []byte) error {
		project, err := UnpackProject(value)
		if nil != err {
			return err
		}
		return f(project)
	})
}

// GetInitialCheckpoint - checkpoint given when the project was registered
func GetInitialCheckpoint(r storage.Reader, projectId identifier.ProjectId) (digest.Digest, bool) {
	buffer, found := r.Get(storage.Pool.InitialCheckpoints, ProjectKey(projectId))
	if !found {
		return digest.Digest{}, false
	}
	d, err := digest.FromBytes(buffer)
	if nil != err {
		logger.Panicf("state: project: %s corrupt initial checkpoint: %s", projectId, err)
	}
	return d, true
}

// PutInitialCheckpoint - record the registration checkpoint
func PutInitialCheckpoint(w storage.Writer, projectId identifier.ProjectId, checkpointId digest.Digest) {
	w.Put(storage.Pool.InitialCheckpoints, ProjectKey(projectId), checkpointId[:])
}

// Checkpoints
// -----------

// GetCheckpoint - the checkpoint with this id
func GetCheckpoint(r storage.Reader, id digest.Digest) (*Checkpoint, bool) {
	buffer, found := r.Get(storage.Pool.Checkpoints, CheckpointKey(id))
	if !found {
		return nil, false
	}
	checkpoint, err := UnpackCheckpoint(buffer)
	if nil != err {
		logger.Panicf("state: checkpoint: %s corrupt record: %s", id, err)
	}
	return checkpoint, true
}

// PutCheckpoint - insert or replace a checkpoint
func PutCheckpoint(w storage.Writer, id digest.Digest, checkpoint *Checkpoint) {
	w.Put(storage.Pool.Checkpoints, CheckpointKey(id), checkpoint.Pack())
}

// IterateCheckpoints - run a function on every checkpoint
func IterateCheckpoints(r storage.Reader, f func(id digest.Digest, checkpoint *Checkpoint) error) error {
	return r.Iterate(storage.Pool.Checkpoints, func(key []byte, value []byte) error {
		id, err := DecodeCheckpointKey(key)
		if nil != err {
			return err
		}
		checkpoint, err := UnpackCheckpoint(value)
		if nil != err {
			return err
		}
		return f(id, checkpoint)
	})
}

// Retired ids
// -----------

// IsRetired - true if the id was ever used by an org or a user
func IsRetired(r storage.Reader, id identifier.Id) bool {
	return r.Has(storage.Pool.RetiredIds, IdKey(id))
}

// Retire - mark an id as used forever
func Retire(w storage.Writer, id identifier.Id) {
	w.Put(storage.Pool.RetiredIds, IdKey(id), []byte{})
}

// IterateRetired - run a function on every retired id
func IterateRetired(r storage.Reader, f func(id identifier.Id) error) error {
	return r.Iterate(storage.Pool.RetiredIds, func(key []byte, value []byte) error {
		id, err := DecodeIdKey(key)
		if nil != err {
			return err
		}
		return f(id)
	})
}
