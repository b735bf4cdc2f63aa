// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the registry state in LevelDB
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. id           = length prefixed org or user id
// 4. project id   = length prefixed name ++ domain kind ++ length prefixed id
// 5. account      = 32 byte ed25519 public key
// 6. digest       = 32 byte SHA3-256
// 7. block number = big endian uint64 (8 bytes)
//
// Registry:
//
//   O ++ id                   - live orgs
//                               data: account ++ members ++ projects
//   U ++ id                   - live users
//                               data: account ++ projects
//   A ++ account              - user associated with an account
//                               data: id
//   M ++ user id ++ org id    - org membership
//                               data: empty
//   P ++ project id           - projects
//                               data: current checkpoint ++ metadata
//   I ++ project id           - checkpoint given at project registration
//                               data: digest
//   C ++ digest               - checkpoints
//                               data: option parent ++ project state hash
//   R ++ id                   - every id ever registered
//                               data: empty
//
// Accounts:
//
//   B ++ account              - free balance
//                               data: big endian uint64
//   N ++ account              - next nonce
//                               data: big endian uint64
//
// Chain:
//
//   K ++ block number         - packed block
//   E ++ block number         - packed event records of the block
//   T ++ tx id                - block number ++ position in block
//   G ++ name                 - chain scalars: genesis, head, issuance
package storage
