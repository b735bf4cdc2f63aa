// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/registryd/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - SHA3-256 hash
//
// used for project state hashes, checkpoint ids, transaction ids,
// block hashes and the genesis hash
type Digest [Length]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// FromBytes - convert and validate binary byte slice to a digest
func FromBytes(buffer []byte) (Digest, error) {
	d := Digest{}
	if Length != len(buffer) {
		return d, fault.InvalidDigest
	}
	copy(d[:], buffer)
	return d, nil
}

// FromHex - convert hex text to a digest
func FromHex(s string) (Digest, error) {
	d := Digest{}
	err := d.UnmarshalText([]byte(s))
	return d, err
}

// IsZero - true for the all zero digest
func (digest Digest) IsZero() bool {
	return Digest{} == digest
}

// String - hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if Length != hex.DecodedLen(len(s)) {
		return fault.InvalidDigest
	}
	buffer := make([]byte, Length)
	if _, err := hex.Decode(buffer, s); nil != err {
		return fault.InvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}
