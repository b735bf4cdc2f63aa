// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identifier

import (
	"encoding/hex"

	"github.com/bitmark-inc/registryd/fault"
)

// MetadataLength - maximum bytes of project metadata
const MetadataLength = 128

// Bytes128 - opaque project metadata of at most 128 bytes
type Bytes128 []byte

// NewBytes128 - validate the length of metadata
func NewBytes128(b []byte) (Bytes128, error) {
	if len(b) > MetadataLength {
		return nil, fault.MetadataTooLong
	}
	result := make(Bytes128, len(b))
	copy(result, b)
	return result, nil
}

// MarshalText - hex text
func (b Bytes128) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(buffer, b)
	return buffer, nil
}

// UnmarshalText - hex text, validates length
func (b *Bytes128) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	v, err := NewBytes128(buffer[:n])
	if nil != err {
		return err
	}
	*b = v
	return nil
}
