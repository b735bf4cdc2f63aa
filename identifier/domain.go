// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier

import (
	"strings"

	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/fault"
)

// DomainKind - which authority owns a project
type DomainKind byte

// domain kinds, the values are part of the encoding
const (
	OrgDomain  DomainKind = 0
	UserDomain DomainKind = 1
)

// Domain - Org(id) or User(id)
type Domain struct {
	Kind DomainKind `json:"kind"`
	Id   Id         `json:"id"`
}

// Org - domain owned by an org
func Org(id Id) Domain {
	return Domain{Kind: OrgDomain, Id: id}
}

// User - domain owned by a user
func User(id Id) Domain {
	return Domain{Kind: UserDomain, Id: id}
}

// IsOrg - true for an org domain
func (domain Domain) IsOrg() bool {
	return OrgDomain == domain.Kind
}

// String - "org:acme" or "user:alice"
func (domain Domain) String() string {
	switch domain.Kind {
	case OrgDomain:
		return "org:" + string(domain.Id)
	case UserDomain:
		return "user:" + string(domain.Id)
	default:
		return "unknown:" + string(domain.Id)
	}
}

// ParseDomain - inverse of String
func ParseDomain(s string) (Domain, error) {
	parts := strings.SplitN(s, ":", 2)
	if 2 != len(parts) {
		return Domain{}, fault.InvalidProjectDomain
	}
	id, err := NewId(parts[1])
	if nil != err {
		return Domain{}, err
	}
	switch parts[0] {
	case "org":
		return Org(id), nil
	case "user":
		return User(id), nil
	default:
		return Domain{}, fault.InvalidProjectDomain
	}
}

// Pack - kind byte followed by the length prefixed id
func (domain Domain) Pack(buffer []byte) []byte {
	buffer = append(buffer, byte(domain.Kind))
	return codec.AppendString(buffer, string(domain.Id))
}

// UnpackDomain - read a domain written by Pack
func UnpackDomain(r *codec.Reader) (Domain, error) {
	kind := DomainKind(r.Byte())
	s := r.String(MaximumLength)
	if nil != r.Err() {
		return Domain{}, r.Err()
	}
	if OrgDomain != kind && UserDomain != kind {
		return Domain{}, fault.InvalidProjectDomain
	}
	id, err := NewId(s)
	if nil != err {
		return Domain{}, err
	}
	return Domain{Kind: kind, Id: id}, nil
}

// ProjectId - unique key of a project
type ProjectId struct {
	Name   ProjectName `json:"name"`
	Domain Domain      `json:"domain"`
}

// String - "name@org:acme"
func (projectId ProjectId) String() string {
	return string(projectId.Name) + "@" + projectId.Domain.String()
}

// ParseProjectId - inverse of String
func ParseProjectId(s string) (ProjectId, error) {
	parts := strings.SplitN(s, "@", 2)
	if 2 != len(parts) {
		return ProjectId{}, fault.InvalidProjectDomain
	}
	name, err := NewProjectName(parts[0])
	if nil != err {
		return ProjectId{}, err
	}
	domain, err := ParseDomain(parts[1])
	if nil != err {
		return ProjectId{}, err
	}
	return ProjectId{Name: name, Domain: domain}, nil
}

// Pack - length prefixed name followed by the domain
func (projectId ProjectId) Pack(buffer []byte) []byte {
	buffer = codec.AppendString(buffer, string(projectId.Name))
	return projectId.Domain.Pack(buffer)
}

// UnpackProjectId - read a project id written by Pack
func UnpackProjectId(r *codec.Reader) (ProjectId, error) {
	s := r.String(MaximumLength)
	if nil != r.Err() {
		return ProjectId{}, r.Err()
	}
	name, err := NewProjectName(s)
	if nil != err {
		return ProjectId{}, err
	}
	domain, err := UnpackDomain(r)
	if nil != err {
		return ProjectId{}, err
	}
	return ProjectId{Name: name, Domain: domain}, nil
}
