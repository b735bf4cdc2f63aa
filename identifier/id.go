// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier

import (
	"github.com/bitmark-inc/registryd/fault"
)

// MaximumLength - longest Id or ProjectName
const MaximumLength = 32

// Id - org or user identifier
//
// orgs and users share one namespace
type Id string

// NewId - validate a string as an Id
func NewId(s string) (Id, error) {
	if !validName(s) {
		return "", fault.InvalidIdentifier
	}
	return Id(s), nil
}

// String - the identifier text
func (id Id) String() string {
	return string(id)
}

// MarshalText - for JSON
func (id Id) MarshalText() ([]byte, error) {
	return []byte(id), nil
}

// UnmarshalText - for JSON, validates
func (id *Id) UnmarshalText(s []byte) error {
	v, err := NewId(string(s))
	if nil != err {
		return err
	}
	*id = v
	return nil
}

// ProjectName - name of a project within its domain
type ProjectName string

// NewProjectName - validate a string as a ProjectName
func NewProjectName(s string) (ProjectName, error) {
	if !validName(s) {
		return "", fault.InvalidProjectName
	}
	return ProjectName(s), nil
}

// String - the name text
func (name ProjectName) String() string {
	return string(name)
}

// MarshalText - for JSON
func (name ProjectName) MarshalText() ([]byte, error) {
	return []byte(name), nil
}

// UnmarshalText - for JSON, validates
func (name *ProjectName) UnmarshalText(s []byte) error {
	v, err := NewProjectName(string(s))
	if nil != err {
		return err
	}
	*name = v
	return nil
}

// 1..32 of [a-z0-9-], no hyphen at either end and no two adjacent
func validName(s string) bool {
	n := len(s)
	if n < 1 || n > MaximumLength {
		return false
	}
	if '-' == s[0] || '-' == s[n-1] {
		return false
	}
	previous := byte(0)
	for i := 0; i < n; i += 1 {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case '-' == c:
			if '-' == previous {
				return false
			}
		default:
			return false
		}
		previous = c
	}
	return true
}
