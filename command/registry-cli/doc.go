// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// registry-cli - command line access to a registryd node
//
// queries need only the node address and its certificate
// fingerprint; submissions also need a key pair, either a Base58 key
// from --key (or REGISTRY_KEY) or a named development account from
// --dev on the local and testing chains
//
//   registry-cli -c 127.0.0.1:2130 -f FINGERPRINT --dev Alice user register alice
//   registry-cli -c 127.0.0.1:2130 -f FINGERPRINT org list
package main
