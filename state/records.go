// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/identifier"
)

// bound on list lengths accepted when decoding
const maximumListLength = 1 << 20

// Org - a collective account owning projects
type Org struct {
	Account  account.Account          `json:"account"`
	Members  []identifier.Id          `json:"members"`
	Projects []identifier.ProjectName `json:"projects"`
}

// User - an identity bound to one account
type User struct {
	Account  account.Account          `json:"account"`
	Projects []identifier.ProjectName `json:"projects"`
}

// Project - a named project under an org or a user
type Project struct {
	Name              identifier.ProjectName `json:"name"`
	Domain            identifier.Domain      `json:"domain"`
	CurrentCheckpoint digest.Digest          `json:"currentCheckpoint"`
	Metadata          identifier.Bytes128    `json:"metadata"`
}

// Checkpoint - one node of a project history
//
// its id is the hash of its packed contents, see checkpoint.Id
type Checkpoint struct {
	Parent *digest.Digest `json:"parent"`
	Hash   digest.Digest  `json:"hash"`
}

// HasMember - true if the user is in the member list
func (org *Org) HasMember(userId identifier.Id) bool {
	for _, m := range org.Members {
		if userId == m {
			return true
		}
	}
	return false
}

// Pack - account ++ count ++ members ++ count ++ projects
func (org *Org) Pack() []byte {
	buffer := codec.AppendFixed(nil, org.Account[:])
	buffer = codec.AppendVarint64(buffer, uint64(len(org.Members)))
	for _, m := range org.Members {
		buffer = codec.AppendString(buffer, string(m))
	}
	return packNames(buffer, org.Projects)
}

// UnpackOrg - inverse of Pack
func UnpackOrg(buffer []byte) (*Org, error) {
	r := codec.NewReader(buffer)
	org := &Org{}
	copy(org.Account[:], r.Fixed(account.Length))

	n := r.Varint64()
	if n > maximumListLength {
		return nil, errCorrupt(r)
	}
	org.Members = make([]identifier.Id, 0, n)
	for i := uint64(0); i < n && nil == r.Err(); i += 1 {
		id, err := identifier.NewId(r.String(identifier.MaximumLength))
		if nil != r.Err() {
			break
		}
		if nil != err {
			return nil, err
		}
		org.Members = append(org.Members, id)
	}

	projects, err := unpackNames(r)
	if nil != err {
		return nil, err
	}
	org.Projects = projects
	if err := r.Finish(); nil != err {
		return nil, err
	}
	return org, nil
}

// Pack - account ++ count ++ projects
func (user *User) Pack() []byte {
	buffer := codec.AppendFixed(nil, user.Account[:])
	return packNames(buffer, user.Projects)
}

// UnpackUser - inverse of Pack
func UnpackUser(buffer []byte) (*User, error) {
	r := codec.NewReader(buffer)
	user := &User{}
	copy(user.Account[:], r.Fixed(account.Length))
	projects, err := unpackNames(r)
	if nil != err {
		return nil, err
	}
	user.Projects = projects
	if err := r.Finish(); nil != err {
		return nil, err
	}
	return user, nil
}

// Pack - project id ++ current checkpoint ++ metadata
func (project *Project) Pack() []byte {
	buffer := identifier.ProjectId{Name: project.Name, Domain: project.Domain}.Pack(nil)
	buffer = codec.AppendFixed(buffer, project.CurrentCheckpoint[:])
	return codec.AppendBytes(buffer, project.Metadata)
}

// UnpackProject - inverse of Pack
func UnpackProject(buffer []byte) (*Project, error) {
	r := codec.NewReader(buffer)
	projectId, err := identifier.UnpackProjectId(r)
	if nil != err {
		return nil, err
	}
	project := &Project{
		Name:   projectId.Name,
		Domain: projectId.Domain,
	}
	copy(project.CurrentCheckpoint[:], r.Fixed(digest.Length))
	project.Metadata = r.Bytes(identifier.MetadataLength)
	if err := r.Finish(); nil != err {
		return nil, err
	}
	return project, nil
}

// Pack - option parent ++ hash
func (checkpoint *Checkpoint) Pack() []byte {
	buffer := codec.AppendBool(nil, nil != checkpoint.Parent)
	if nil != checkpoint.Parent {
		buffer = codec.AppendFixed(buffer, checkpoint.Parent[:])
	}
	return codec.AppendFixed(buffer, checkpoint.Hash[:])
}

// UnpackCheckpoint - inverse of Pack
func UnpackCheckpoint(buffer []byte) (*Checkpoint, error) {
	r := codec.NewReader(buffer)
	checkpoint := &Checkpoint{}
	if r.Bool() {
		parent := digest.Digest{}
		copy(parent[:], r.Fixed(digest.Length))
		checkpoint.Parent = &parent
	}
	copy(checkpoint.Hash[:], r.Fixed(digest.Length))
	if err := r.Finish(); nil != err {
		return nil, err
	}
	return checkpoint, nil
}

func packNames(buffer []byte, names []identifier.ProjectName) []byte {
	buffer = codec.AppendVarint64(buffer, uint64(len(names)))
	for _, name := range names {
		buffer = codec.AppendString(buffer, string(name))
	}
	return buffer
}

func unpackNames(r *codec.Reader) ([]identifier.ProjectName, error) {
	n := r.Varint64()
	if n > maximumListLength {
		return nil, errCorrupt(r)
	}
	names := make([]identifier.ProjectName, 0, n)
	for i := uint64(0); i < n && nil == r.Err(); i += 1 {
		name, err := identifier.NewProjectName(r.String(identifier.MaximumLength))
		if nil != r.Err() {
			break
		}
		if nil != err {
			return nil, err
		}
		names = append(names, name)
	}
	return names, r.Err()
}
