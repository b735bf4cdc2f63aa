// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package checkpoint - content addressed project history
//
// checkpoints form a forest, each pointing to an optional parent
package checkpoint

import (
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/storage"
)

// Id - the id of a checkpoint is the hash of its packed contents
func Id(parent *digest.Digest, projectStateHash digest.Digest) digest.Digest {
	c := state.Checkpoint{
		Parent: parent,
		Hash:   projectStateHash,
	}
	return digest.NewDigest(c.Pack())
}

// Create - store a checkpoint and return its id
//
// the parent, if any, must already exist; storing identical contents
// twice yields the same id and a single entry
func Create(w storage.Writer, parent *digest.Digest, projectStateHash digest.Digest) (digest.Digest, error) {
	if nil != parent {
		if _, found := state.GetCheckpoint(w, *parent); !found {
			return digest.Digest{}, fault.InexistentCheckpointId
		}
	}

	c := &state.Checkpoint{
		Parent: parent,
		Hash:   projectStateHash,
	}
	id := digest.NewDigest(c.Pack())
	state.PutCheckpoint(w, id, c)
	return id, nil
}

// DescendsFrom - true if ancestor is candidate or one of its ancestors
//
// a missing checkpoint anywhere in the walk breaks the chain
func DescendsFrom(r storage.Reader, candidate digest.Digest, ancestor digest.Digest) bool {
	current := candidate
	for {
		if current == ancestor {
			return true
		}
		c, found := state.GetCheckpoint(r, current)
		if !found || nil == c.Parent {
			return false
		}
		current = *c.Parent
	}
}
